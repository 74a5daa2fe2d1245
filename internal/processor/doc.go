// Package processor contains the extraction pipeline. It walks the
// category/problem directory tree, classifies and reads each problem's
// files, translates the README, resolves the canonical link and collects
// one record per problem into a dataset. Every problem directory is an
// isolated unit of work: a failure is logged and the walk continues.
package processor
