package model

// VersionID identifies a committed document version. It increases
// monotonically with every committed transaction; positions resolved
// against one version are invalid against any other.
type VersionID uint64
