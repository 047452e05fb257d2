//go:build !ios && !android && (amd64 || arm64)

package avutil

import "unsafe"

// OptSearchChildren makes option lookups descend into child objects.
const OptSearchChildren = 1

// OptGetRational reads a rational AVOption such as "pkt_timebase" from an
// AVClass-enabled struct.
func OptGetRational(obj unsafe.Pointer, name string) (Rational, error) {
	var r Rational
	if obj == nil || avOptGetQ == nil {
		return r, NewError(AVERROR_EINVAL, "av_opt_get_q")
	}
	if err := NewError(avOptGetQ(obj, name, 0, &r), "av_opt_get_q"); err != nil {
		return Rational{}, err
	}
	return r, nil
}
