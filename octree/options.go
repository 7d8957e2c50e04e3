package octree

import (
	"github.com/rs/zerolog"

	"github.com/vellumlabs/morton-octree/morton"
)

// Option configures a PointerOctree at construction time, the same
// functional-options pattern the teacher's invoker.New uses.
type Option[T any, M morton.Key[M]] func(*config[T, M])

type config[T any, M morton.Key[M]] struct {
	logger zerolog.Logger
}

func defaultConfig[T any, M morton.Key[M]]() config[T, M] {
	return config[T, M]{logger: zerolog.Nop()}
}

// WithLogger attaches a trace-level diagnostics sink. It has no
// semantic effect on the tree's contents (§6 "logging sink... no
// semantic effect").
func WithLogger[T any, M morton.Key[M]](log zerolog.Logger) Option[T, M] {
	return func(c *config[T, M]) { c.logger = log }
}
