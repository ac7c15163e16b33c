// Package paths derives the remote namespace prefix and builds parameter
// paths under it. Every get, put, delete and list goes through the same join
// rule so a prefix mismatch cannot creep in between operations.
package paths

import "strings"

// Resolve returns the namespace prefix for one operation. A non-empty
// override wins verbatim; otherwise the default is derived from the service
// identity and stage.
func Resolve(override, service, stage string) string {
	if override != "" {
		return override
	}
	return "/" + service + "-" + stage + "/secrets/"
}

// Join builds the full remote path for a secret name under a prefix
func Join(prefix, name string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + name
}

// Name recovers the local secret name from a full remote path by stripping
// the namespace prefix
func Name(prefix, path string) string {
	name := strings.TrimPrefix(path, strings.TrimSuffix(prefix, "/"))
	return strings.TrimPrefix(name, "/")
}
