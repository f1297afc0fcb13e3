// Package apkcmd queries a live apk installation for dependency data.
//
// It is the on-device counterpart to the static apkindex source: instead of
// parsing a mirror's APKINDEX file, it invokes the apk command-line tool
// ("apk info --depends" by default) once per newly discovered package.
// Because every resolution of a popular package walks largely the same
// subtree, responses can be cached through pkg/cache with a configurable
// TTL.
package apkcmd
