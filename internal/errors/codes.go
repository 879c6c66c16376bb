// Package errors provides centralized error code definitions and the
// structured diagnostic report type for vibefun.
// All error codes follow a consistent taxonomy for stable reporting.
package errors

// Error code constants organized by phase.
const (
	// ============================================================================
	// Type Checker Errors (TC###)
	// ============================================================================

	// TC001 indicates a reference to an undefined name
	TC001 = "TC001"

	// TC002 indicates two types could not be unified
	TC002 = "TC002"

	// TC003 indicates the occurs check failed (infinite type)
	TC003 = "TC003"

	// TC004 indicates a function was applied to the wrong number of arguments
	TC004 = "TC004"

	// TC005 indicates a non-exhaustive match
	TC005 = "TC005"

	// TC006 indicates a pattern applied a constructor with the wrong arity
	TC006 = "TC006"

	// TC007 indicates a pattern referenced an unknown constructor
	TC007 = "TC007"

	// TC008 indicates a reference to a record field that does not exist
	TC008 = "TC008"

	// TC009 indicates field access on a non-record type
	TC009 = "TC009"

	// TC010 indicates the same name is bound twice within one pattern
	TC010 = "TC010"

	// TC011 indicates a record pattern matched against a non-record type
	TC011 = "TC011"

	// TC012 indicates an unsupported pattern in a binding position
	TC012 = "TC012"

	// TC013 indicates an expression did not match its type annotation
	TC013 = "TC013"

	// TC014 indicates an overloaded name was used outside a call
	TC014 = "TC014"

	// ============================================================================
	// Overload Resolution Errors (OVL###)
	// ============================================================================

	// OVL001 indicates the called name is not defined
	OVL001 = "OVL001"

	// OVL002 indicates no overload entry matches the call's arity
	OVL002 = "OVL002"

	// OVL003 indicates two or more overload entries match the call's arity
	OVL003 = "OVL003"

	// ============================================================================
	// Environment Builder Errors (ENV###)
	// ============================================================================

	// ENV001 indicates an overload group with inconsistent jsName values
	ENV001 = "ENV001"

	// ENV002 indicates an overload group with inconsistent import sources
	ENV002 = "ENV002"

	// ENV003 indicates an overload group entry whose type is not a function
	ENV003 = "ENV003"
)

// Phase names used in reports
const (
	PhaseTypecheck = "typecheck"
	PhaseEnv       = "env"
)
