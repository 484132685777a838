package listener

// Options configure how the host attaches a listener.
type Options struct {
	// Capture delivers the event during the capture phase.
	Capture bool

	// Passive promises the callback never calls PreventDefault.
	Passive bool

	// Once removes the registration after its first delivery.
	Once bool
}

// Option flag bits, as understood by hosts and the wire protocol.
const (
	FlagCapture uint8 = 1 << iota
	FlagPassive
	FlagOnce
)

// DefaultOptions returns bubble-phase, non-passive, persistent options.
func DefaultOptions() Options {
	return Options{}
}

// Flags packs the options into the native flag byte.
func (o Options) Flags() uint8 {
	var f uint8
	if o.Capture {
		f |= FlagCapture
	}
	if o.Passive {
		f |= FlagPassive
	}
	if o.Once {
		f |= FlagOnce
	}
	return f
}

// OptionsFromFlags unpacks a native flag byte. Unknown bits are ignored.
func OptionsFromFlags(f uint8) Options {
	return Options{
		Capture: f&FlagCapture != 0,
		Passive: f&FlagPassive != 0,
		Once:    f&FlagOnce != 0,
	}
}
