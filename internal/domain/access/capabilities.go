package access

func CapabilitiesFor(state State) []string {
	switch state {
	case StateFull:
		return []string{"read", "write", "upload", "invite"}

	case StateLimited:
		// Members can still read and export what they paid for.
		return []string{"read", "export"}

	default:
		return []string{}
	}
}
