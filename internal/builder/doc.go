/*
Package builder turns a loaded patch (config.Model) into a live graph.Graph.

Graph construction is a two-pass process:

 1. Node Creation: for every patch entry the builder looks the node type up
    in the registry, checks the number of inputs against the type's arity,
    decodes the arguments into the type's argument struct and inserts the
    resulting node. Nothing is wired yet, because node IDs only exist once
    every node is inserted.

 2. Linking: each input address (`osc` or `split[1]`) is resolved to a
    node.Port. The output index is checked against the source node's actual
    output count, so a typo surfaces here, with the patch location, rather
    than as ErrInvalidConnection on the first frame. Ports are then handed
    to the node through registry.Connector.

Feedback loops are not rejected here. The graph reports them per frame with
ErrFeedbackLoop, the same as for graphs built by hand.
*/
package builder
