package errors

import (
	"errors"
	"fmt"
)

const (
	CodeConfigNotFound = "CONFIG_NOT_FOUND"
)

// Reason classifies why a release was blocked.
type Reason string

const (
	ReasonNotInCI             Reason = "NOT_IN_CI"
	ReasonIsPullRequest       Reason = "IS_PULL_REQUEST"
	ReasonIsTag               Reason = "IS_TAG"
	ReasonBranchMismatch      Reason = "BRANCH_MISMATCH"
	ReasonNotBuildLeader      Reason = "NOT_BUILD_LEADER"
	ReasonSiblingJobsFailed   Reason = "SIBLING_JOBS_FAILED"
	ReasonCoordinationFailure Reason = "COORDINATION_FAILURE"
)

// Types ////////////////////////////////////////

type CodedError interface {
	Code() string
}

type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string {
	return e.msg
}

func (e *codedError) Code() string {
	return e.code
}

// BlockedError is returned when a release must not go ahead. Detail carries
// context for the reason, e.g. the unexpected exit code of a coordinator.
type BlockedError struct {
	Reason Reason
	Detail any
	msg    string
}

func (e *BlockedError) Error() string {
	return e.msg
}

func (e *BlockedError) Code() string {
	return string(e.Reason)
}

// Error Creators ///////////////////////////////

// The config file was not found
func ConfigNotFound(msg string) error {
	return &codedError{
		code: CodeConfigNotFound,
		msg:  msg,
	}
}

func NotInCI(provider string) error {
	if provider == "" {
		provider = "the configured CI provider"
	}
	return &BlockedError{
		Reason: ReasonNotInCI,
		msg:    fmt.Sprintf("This run is not executing on %s", provider),
	}
}

func IsPullRequest(id string) error {
	return &BlockedError{
		Reason: ReasonIsPullRequest,
		Detail: id,
		msg:    fmt.Sprintf("This run was triggered by pull request %s", id),
	}
}

func IsTag(tag string) error {
	return &BlockedError{
		Reason: ReasonIsTag,
		Detail: tag,
		msg:    fmt.Sprintf("This run was triggered by the git tag %s", tag),
	}
}

func BranchMismatch(want string, got string) error {
	return &BlockedError{
		Reason: ReasonBranchMismatch,
		Detail: got,
		msg:    fmt.Sprintf("This run is on branch %q, releases are restricted to %q", got, want),
	}
}

func NotBuildLeader() error {
	return &BlockedError{
		Reason: ReasonNotBuildLeader,
		msg:    "This job is not the build leader",
	}
}

func SiblingJobsFailed() error {
	return &BlockedError{
		Reason: ReasonSiblingJobsFailed,
		msg:    "This job is the build leader, but at least one other job in the build failed",
	}
}

func CoordinationFailure(exitCode any) error {
	return &BlockedError{
		Reason: ReasonCoordinationFailure,
		Detail: exitCode,
		msg:    fmt.Sprintf("Build coordination failed unexpectedly (%v)", exitCode),
	}
}

// Helpers //////////////////////////////////////

func IsConfigNotFound(err error) bool {
	return Code(err) == CodeConfigNotFound
}

// Return the error code, or the empty string
func Code(err error) string {
	var cerr CodedError
	if errors.As(err, &cerr) {
		return cerr.Code()
	}

	return ""
}

// ReasonOf returns the reason a release was blocked, if err is a BlockedError.
func ReasonOf(err error) (Reason, bool) {
	var berr *BlockedError
	if errors.As(err, &berr) {
		return berr.Reason, true
	}
	return "", false
}

func IsBlocked(err error) bool {
	_, ok := ReasonOf(err)
	return ok
}

// IsExclusion reports whether err is an expected reason not to release, as
// opposed to the coordination mechanism misbehaving.
func IsExclusion(err error) bool {
	reason, ok := ReasonOf(err)
	return ok && reason != ReasonCoordinationFailure
}

// IsHardFailure reports whether err means something went wrong, as opposed to
// the release being skipped on purpose.
func IsHardFailure(err error) bool {
	if err == nil {
		return false
	}
	reason, ok := ReasonOf(err)
	if !ok {
		return true
	}
	return reason == ReasonCoordinationFailure
}
