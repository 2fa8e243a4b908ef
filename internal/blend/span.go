package blend

// Buffer-level operations. dst and src are image.RGBA.Pix slices of equal
// length (4 bytes per pixel); coverage is an image.Alpha.Pix slice with one
// byte per pixel of dst.

// Span composites src onto dst with the given mode, src scaled by opacity.
func Span(dst, src []byte, mode BlendMode, opacity float64) {
	fn := GetBlendFunc(mode)
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		sa := scaleByte(src[i+3], opacity)
		if sa == 0 && mode != BlendDestinationIn {
			continue
		}
		sr, sg, sb := scaleByte(src[i], opacity), scaleByte(src[i+1], opacity), scaleByte(src[i+2], opacity)
		dst[i], dst[i+1], dst[i+2], dst[i+3] = fn(sr, sg, sb, sa, dst[i], dst[i+1], dst[i+2], dst[i+3])
	}
}

// Mask keeps dst only where coverage is set (destination-in with an
// alpha-only source).
func Mask(dst, coverage []byte) {
	n := min(len(dst)/4, len(coverage))
	for p := 0; p < n; p++ {
		i := p * 4
		ma := coverage[p]
		switch ma {
		case 255:
			continue
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		default:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = blendDestinationIn(0, 0, 0, ma, dst[i], dst[i+1], dst[i+2], dst[i+3])
		}
	}
}

// Solid composites a single premultiplied color onto every pixel of dst.
func Solid(dst []byte, r, g, b, a byte, mode BlendMode) {
	fn := GetBlendFunc(mode)
	for i := 0; i+3 < len(dst); i += 4 {
		if mode == BlendDestinationOver && dst[i+3] == 255 {
			continue
		}
		dst[i], dst[i+1], dst[i+2], dst[i+3] = fn(r, g, b, a, dst[i], dst[i+1], dst[i+2], dst[i+3])
	}
}
