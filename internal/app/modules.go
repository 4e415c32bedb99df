package app

import (
	"github.com/vk/framegraph/internal/registry"
	"github.com/vk/framegraph/modules/gain"
	"github.com/vk/framegraph/modules/meter"
	"github.com/vk/framegraph/modules/mixer"
	"github.com/vk/framegraph/modules/output"
	"github.com/vk/framegraph/modules/sine"
	"github.com/vk/framegraph/modules/socketio"
	"github.com/vk/framegraph/modules/split"
	"github.com/vk/framegraph/modules/zero"
)

// coreModules is the definitive list of all node types compiled into the
// framegraph binary.
var coreModules = []registry.Module{
	&zero.Module{},
	&sine.Module{},
	&gain.Module{},
	&mixer.Module{},
	&split.Module{},
	&output.Module{},
	&meter.Module{},
	&socketio.Module{},
}

// CoreModules returns a copy of the modules registered when NewApp is given
// none.
func CoreModules() []registry.Module {
	return append([]registry.Module(nil), coreModules...)
}
