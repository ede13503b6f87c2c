package exitcode

// Process exit codes, following sysexits.h.
const (
	OK      = 0
	Usage   = 64
	DataErr = 65
	IOErr   = 74
	Config  = 78
)
