package token

// Policy pins the source's open questions (spec.md §9) to explicit,
// overridable booleans instead of silently picking one behavior.
type Policy struct {
	// RejectApproveOnFrozen rejects Approve on a Frozen Account with
	// AccountFrozen. The reference source does not perform this check;
	// the conservative default here is true. Set false to reproduce the
	// source's literal (arguably latent-defect) behavior.
	RejectApproveOnFrozen bool
}

// PolicyDefault is the conservative policy NewProcessor installs. A
// Processor literal without an explicit Policy gets the zero Policy
// instead, which does not reject Approve on a Frozen Account.
var PolicyDefault = Policy{
	RejectApproveOnFrozen: true,
}
