// Package blend implements the compositing operators used to assemble a
// reveal frame: Porter-Duff source-over, destination-in and
// destination-over, plus the separable multiply blend mode for overlays.
//
// All operations work on premultiplied RGBA bytes in the range 0-255, the
// layout of image.RGBA.Pix.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// BlendMode represents a compositing operation.
type BlendMode uint8

const (
	BlendSourceOver      BlendMode = iota // Result: S + D*(1-Sa) [default]
	BlendDestinationIn                    // Result: D*Sa
	BlendDestinationOver                  // Result: S*(1-Da) + D
	BlendMultiply                         // Result: (1-Sa)*D + (1-Da)*S + Sa*Da*B(S, D)
)

// String returns the CSS-style name of the mode.
func (m BlendMode) String() string {
	switch m {
	case BlendSourceOver:
		return "source-over"
	case BlendDestinationIn:
		return "destination-in"
	case BlendDestinationOver:
		return "destination-over"
	case BlendMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// BlendFunc is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetBlendFunc returns the blend function for the given mode.
// Returns source-over for unknown modes.
func GetBlendFunc(mode BlendMode) BlendFunc {
	switch mode {
	case BlendDestinationIn:
		return blendDestinationIn
	case BlendDestinationOver:
		return blendDestinationOver
	case BlendMultiply:
		return blendMultiply
	default:
		return blendSourceOver
	}
}

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// blendDestinationOver composites destination over source.
// Formula: S * (1 - Da) + D
func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), dr),
		addDiv255(mulDiv255(sg, invDa), dg),
		addDiv255(mulDiv255(sb, invDa), db),
		addDiv255(mulDiv255(sa, invDa), da)
}

// blendDestinationIn shows destination where source is opaque.
// Formula: D * Sa
func blendDestinationIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// blendMultiply multiplies unmultiplied source and destination colors.
// Formula: B(Cb, Cs) = Cb * Cs
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	sur, sug, sub := unpremul(sr, sa), unpremul(sg, sa), unpremul(sb, sa)
	dur, dug, dub := unpremul(dr, da), unpremul(dg, da), unpremul(db, da)

	invSa := 255 - sa
	invDa := 255 - da
	saDa := mulDiv255(sa, da)

	// (1 - Sa) * D + (1 - Da) * S + Sa * Da * B
	r := addDiv255(addDiv255(mulDiv255(dr, invSa), mulDiv255(sr, invDa)), mulDiv255(saDa, mulDiv255(sur, dur)))
	g := addDiv255(addDiv255(mulDiv255(dg, invSa), mulDiv255(sg, invDa)), mulDiv255(saDa, mulDiv255(sug, dug)))
	b := addDiv255(addDiv255(mulDiv255(db, invSa), mulDiv255(sb, invDa)), mulDiv255(saDa, mulDiv255(sub, dub)))
	a := addDiv255(sa, mulDiv255(da, invSa))
	return r, g, b, a
}
