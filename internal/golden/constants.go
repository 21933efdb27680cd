package golden

// Layout of the testdata tree.
const (
	rootEnvVar  = "CONDITIONER_ROOT"
	testdataDir = "testdata"
	goldenDir   = "golden"
	outputDir   = "output"
)

// CSV formatting
const (
	csvPrecision = 10
	floatBufSize = 32
	dirPerm      = 0o755
)
