package model

import "fmt"

// InvalidRangeError reports a configuration mismatch between the analysis
// year and the subset_time range. It is fatal: the run aborts before any
// downstream work begins.
type InvalidRangeError struct {
	Year   ModelYear
	Range  TimeRange
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid subset_time %s for year %d: %s", e.Range, e.Year, e.Reason)
}

// NoDataForYearError reports that the archive has no usable coverage for the
// configured year. Fatal, same as InvalidRangeError.
type NoDataForYearError struct {
	Year   ModelYear
	Detail string
}

func (e *NoDataForYearError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("archive has no data for year %d", e.Year)
	}
	return fmt.Sprintf("archive has no data for year %d: %s", e.Year, e.Detail)
}

// MissingCapacityFactorError reports that a technology has no capacity-factor
// entry for any year. Recoverable: the run continues with the remaining
// technologies and the error is collected into the bind report.
type MissingCapacityFactorError struct {
	Technology string
	Year       ModelYear
}

func (e *MissingCapacityFactorError) Error() string {
	return fmt.Sprintf("%s: no capacity factor entry for year %d or any other year", e.Technology, e.Year)
}

// ProfileCoverageError reports that a profile-valued entry does not cover
// enough of the resolved window to align without extrapolating. Recoverable,
// per technology.
type ProfileCoverageError struct {
	Technology string
	Year       ModelYear
	Uncovered  int
}

func (e *ProfileCoverageError) Error() string {
	return fmt.Sprintf("%s: profile for year %d leaves %d window timestamps uncovered", e.Technology, e.Year, e.Uncovered)
}
