// Package release looks up the newest published version of autoscroll and
// compares it with the running one.
//
// The feed is any HTTP endpoint returning JSON with a "tag_name" (GitHub
// releases API) or "version" field. The feed URL may contain a {package}
// placeholder that is replaced with the configured package identifier.
//
// Manual checks report failures to the caller. Background checks started with
// Checker.Run only log them at debug level.
package release
