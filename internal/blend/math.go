package blend

// mulDiv255 multiplies two byte values and divides by 255 with rounding.
// Formula: (a * b + 127) / 255
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two byte values with clamping to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// unpremul recovers a straight color channel from a premultiplied one.
func unpremul(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := uint16(c) * 255 / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// scaleByte scales v by a factor in [0, 1].
func scaleByte(v byte, f float64) byte {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return v
	}
	return byte(float64(v)*f + 0.5)
}
