package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

// Init sets up the snowflake node used for all database row IDs. The
// backend runs as a single instance, so main passes a fixed node ID;
// distinct IDs (0-1023) only matter if replicas ever share a database.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID returns the next time-ordered ID. Init must have been called.
func NextID() int64 {
	return node.Generate().Int64()
}
