package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// localsRoot is the first decoding pass: it lifts the locals blocks out of a
// file and leaves everything else for the second pass.
type localsRoot struct {
	Locals []*localsBlock `hcl:"locals,block"`
	Remain hcl.Body       `hcl:",remain"`
}

type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// fileRoot is every block a session file may contain once locals are known.
type fileRoot struct {
	Outputs     []*outputBlock      `hcl:"output,block"`
	Sounds      []*soundsBlock      `hcl:"sounds,block"`
	Explore     []*exploreBlock     `hcl:"explore,block"`
	Progression []*progressionBlock `hcl:"progression,block"`
}

// outputBlock is `output "<driver>" "<name>" { ... }`.
type outputBlock struct {
	Driver    string `hcl:"driver,label"`
	Name      string `hcl:"name,label"`
	URL       string `hcl:"url,optional"`
	Namespace string `hcl:"namespace,optional"`
	Event     string `hcl:"event,optional"`
}

type soundsBlock struct {
	SoundsFile      string   `hcl:"sounds_file"`
	RangesFile      string   `hcl:"ranges_file"`
	ChannelsPerPort int      `hcl:"channels_per_port,optional"`
	Ports           []string `hcl:"ports,optional"`
}

type exploreBlock struct {
	Start []string     `hcl:"start"`
	Steps int          `hcl:"steps,optional"`
	Low   string       `hcl:"low,optional"`
	High  string       `hcl:"high,optional"`
	Scale string       `hcl:"scale,optional"`
	Tonic string       `hcl:"tonic,optional"`
	Rules []*ruleBlock `hcl:"rule,block"`
}

// ruleBlock is `rule "<kind>" { ... }`.
type ruleBlock struct {
	Kind      string `hcl:"kind,label"`
	Voice     int    `hcl:"voice,optional"`
	Semitones []int  `hcl:"semitones,optional"`
	Degrees   []int  `hcl:"degrees,optional"`
	Ceiling   string `hcl:"ceiling,optional"`
}

type progressionBlock struct {
	Length   int           `hcl:"length,optional"`
	Beat     string        `hcl:"beat,optional"`
	Duration string        `hcl:"duration,optional"`
	Velocity int           `hcl:"velocity,optional"`
	Voices   []*voiceBlock `hcl:"voice,block"`
}

// voiceBlock is `voice "<name>" { ... }`.
type voiceBlock struct {
	Name         string `hcl:"name,label"`
	Section      string `hcl:"section"`
	Instrument   string `hcl:"instrument"`
	Articulation string `hcl:"articulation"`
	Voice        int    `hcl:"voice,optional"`
	Velocity     int    `hcl:"velocity,optional"`
}
