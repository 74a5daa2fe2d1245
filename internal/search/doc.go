// Package search resolves canonical problem links through a web search
// provider. Searchers yield result URLs lazily; the Resolver stops reading
// as soon as a URL on the target site shows up.
package search
