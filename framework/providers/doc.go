// Package providers holds the providers every configy application registers:
// the built-in settings and logger types, plus instances of the host
// configuration and logger.
package providers
