package entities

// Fixture is the expected-behavior record for one test case, loaded from
// the case's metadata file. A nil RunExportedFunction means the case is
// restore-only: the snapshot must load but nothing is invoked. A nil
// ExpectedPrintout means the captured output is not compared.
type Fixture struct {
	// Description is optional free-form text shown in reports.
	Description string `yaml:"description" json:"description,omitempty"`

	// RunExportedFunction is the export ID to resolve and invoke with no
	// arguments.
	RunExportedFunction *uint16 `yaml:"runExportedFunction" json:"runExportedFunction,omitempty"`

	// ExpectedPrintout is the exact output the run must produce via the
	// print host function. No normalization is applied.
	ExpectedPrintout *string `yaml:"expectedPrintout" json:"expectedPrintout,omitempty"`

	// Skip marks the case as deliberately not run. Skipped cases do not
	// fail the harness.
	Skip bool `yaml:"skip" json:"skip,omitempty"`
}
