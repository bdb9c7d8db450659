package model

import "strings"

// The server contract has two independent path conventions that must not be
// conflated: parameters on the file-path axis use forward slashes, while
// parameters on the wallet-path axis use backslashes. The asymmetry is
// deliberate on the server side; callers pick the axis per parameter.

// NormalizeFilePath converts a path to the file-path axis (forward slashes).
func NormalizeFilePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// NormalizeWalletPath converts a path to the wallet-path axis (backslashes).
func NormalizeWalletPath(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}
