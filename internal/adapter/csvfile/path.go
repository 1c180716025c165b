package csvfile

import "strings"

// CleanedSuffix is appended to the input base name for the CSV output.
const CleanedSuffix = "_cleaned.csv"

// OutputPath derives an output file name from the input path: everything
// before the first "." is kept and suffix is appended. A path without a
// dot is used whole, so "data/jfk.2020.csv" becomes "data/jfk_cleaned.csv".
func OutputPath(input, suffix string) string {
	base, _, _ := strings.Cut(input, ".")
	return base + suffix
}
