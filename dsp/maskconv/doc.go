// Package maskconv applies half-spectrum frequency masks to finite signals
// using windowed overlap-add processing.
//
// It exists to validate generated EQ masks offline: a mask is mirrored into a
// full conjugate-symmetric spectrum, each 50%-overlapping Hann-windowed frame
// is multiplied by it in the frequency domain, and the filtered frames are
// accumulated back into a time-domain signal. Real-time streaming filtering
// belongs to the consuming firmware, not this package.
package maskconv
