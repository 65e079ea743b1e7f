// Package tracking generates the human-shareable complaint tracking codes
// ("MZF" + year + numeric sequence) used for stateless, unauthenticated
// lookup.
package tracking

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// Prefix identifies municipal complaint codes.
const Prefix = "MZF"

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

func snowflakeNode() *snowflake.Node {
	nodeOnce.Do(func() {
		id := int64(1)
		if env := os.Getenv("SNOWFLAKE_NODE"); env != "" {
			if parsed, err := strconv.ParseInt(env, 10, 64); err == nil {
				id = parsed
			}
		}
		n, err := snowflake.NewNode(id)
		if err != nil {
			return
		}
		node = n
	})
	return node
}

// NewCode returns a fresh tracking code such as "MZF20251948...".
// Snowflake gives an all-digit, time-ordered sequence; if node setup failed
// a KSUID suffix keeps codes unique.
func NewCode(now time.Time) string {
	if n := snowflakeNode(); n != nil {
		return fmt.Sprintf("%s%d%s", Prefix, now.Year(), n.Generate().String())
	}
	return fmt.Sprintf("%s%d%s", Prefix, now.Year(), ksuid.New().String())
}
