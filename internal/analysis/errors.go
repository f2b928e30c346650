package analysis

import "errors"

// errNotCommittable is returned by CommitTransaction when called on a
// non-committable transaction, or one already committed or dropped.
var errNotCommittable = errors.New("analysis: transaction is not an active committable transaction")
