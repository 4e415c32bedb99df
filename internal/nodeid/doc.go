// internal/nodeid/doc.go

/*
Package nodeid parses the input references used in patch files.

A reference names a node and, optionally, one of its outputs:
`osc` reads output 0 of node `osc`, `split[1]` reads output 1 of node
`split`. Node names follow the same rules everywhere a patch names a node,
so the loaders validate names through this package too.
*/
package nodeid
