package main

import (
	"fmt"
	"strings"
)

// DefaultRowLimit caps query_database results unless the statement already
// carries a LIMIT clause or the caller overrides it.
const DefaultRowLimit = 100

// Statement classes each tool accepts. The check is a case-insensitive
// prefix match, nothing more. It is a policy boundary against accidental
// DDL/DML through the wrong tool, not a defense against a determined
// attacker with direct statement access.
var (
	queryStatementClasses = []string{"SELECT"}
	execStatementClasses  = []string{"INSERT", "UPDATE", "DELETE"}
)

// validateStatementClass checks that the statement begins with one of the
// allowed keyword prefixes. policyErr names the violated policy.
func validateStatementClass(stmt string, allowed []string, policyErr error) error {
	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" {
		return ErrQueryEmpty
	}

	upper := strings.ToUpper(trimmed)
	for _, class := range allowed {
		if strings.HasPrefix(upper, class) {
			return nil
		}
	}
	return policyErr
}

// validateSingleStatement rejects stacked queries. The semicolon check runs
// over scrubbed SQL so literals and comments don't false positive.
func validateSingleStatement(stmt string, adapter DBAdapter) error {
	cleaned := adapter.RemoveStringsAndComments(stmt)
	if idx := strings.Index(cleaned, ";"); idx != -1 {
		if strings.TrimSpace(cleaned[idx+1:]) != "" {
			return ErrMultipleStatements
		}
	}
	return nil
}

// hasLimitClause reports whether the statement already mentions LIMIT.
// Substring match on the uppercased text, matching the coarse semantics of
// the row-cap policy.
func hasLimitClause(stmt string) bool {
	return strings.Contains(strings.ToUpper(stmt), "LIMIT")
}

// stringArg extracts a required string argument from a tool call.
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidArgument, key)
	}
	return s, nil
}

// intArg extracts an optional integer argument, coercing the float64 that
// encoding/json produces for JSON numbers.
func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
	}
}
