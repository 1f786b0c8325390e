package yamlcfg

// file is the document layout of one YAML session file.
type file struct {
	Outputs     []outputDoc     `yaml:"outputs"`
	Sounds      *soundsDoc      `yaml:"sounds"`
	Explore     *exploreDoc     `yaml:"explore"`
	Progression *progressionDoc `yaml:"progression"`
}

type outputDoc struct {
	Driver    string `yaml:"driver"`
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Event     string `yaml:"event"`
}

type soundsDoc struct {
	SoundsFile      string   `yaml:"sounds_file"`
	RangesFile      string   `yaml:"ranges_file"`
	ChannelsPerPort int      `yaml:"channels_per_port"`
	Ports           []string `yaml:"ports"`
}

type exploreDoc struct {
	Start []string  `yaml:"start"`
	Steps int       `yaml:"steps"`
	Low   string    `yaml:"low"`
	High  string    `yaml:"high"`
	Scale string    `yaml:"scale"`
	Tonic string    `yaml:"tonic"`
	Rules []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	Kind      string `yaml:"kind"`
	Voice     int    `yaml:"voice"`
	Semitones []int  `yaml:"semitones"`
	Degrees   []int  `yaml:"degrees"`
	Ceiling   string `yaml:"ceiling"`
}

type progressionDoc struct {
	Length   int        `yaml:"length"`
	Beat     string     `yaml:"beat"`
	Duration string     `yaml:"duration"`
	Velocity int        `yaml:"velocity"`
	Voices   []voiceDoc `yaml:"voices"`
}

type voiceDoc struct {
	Name         string `yaml:"name"`
	Section      string `yaml:"section"`
	Instrument   string `yaml:"instrument"`
	Articulation string `yaml:"articulation"`
	Voice        int    `yaml:"voice"`
	Velocity     int    `yaml:"velocity"`
}
