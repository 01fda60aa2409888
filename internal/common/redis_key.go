package common

import (
	"fmt"
	"strings"
)

// RedisKeyWidget is the cache key of one board widget response.
func RedisKeyWidget(widget string, params ...string) string {
	if len(params) == 0 {
		return fmt.Sprintf("lucy:widget:%s", widget)
	}

	return fmt.Sprintf("lucy:widget:%s:%s", widget, strings.Join(params, ":"))
}
