package stategen

// Config carries the regenerator's own tunables, distinct from chain-wide
// constants like SLOTS_PER_EPOCH which live in config/params.
type Config struct {
	// MaxHotStates bounds StateCache (N_hot).
	MaxHotStates int
	// MaxCheckpointStates bounds CheckpointStateCache (N_cp).
	MaxCheckpointStates int
	// CheckpointRetentionEpochs controls how far below finalized-epoch a
	// checkpoint entry may lag before it is pruned.
	CheckpointRetentionEpochs int
	// CPUOffloadThresholdSlots is the empty-slot distance above which a
	// ProcessSlots call is offloaded to the CPU worker pool rather than
	// run inline.
	CPUOffloadThresholdSlots int
}

// DefaultConfig returns the regenerator's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxHotStates:              32,
		MaxCheckpointStates:       32,
		CheckpointRetentionEpochs: 2,
		CPUOffloadThresholdSlots:  32,
	}
}

// Option configures a Config in the functional-option style used
// throughout the node's service constructors.
type Option func(*Config)

// WithMaxHotStates overrides MaxHotStates.
func WithMaxHotStates(n int) Option {
	return func(c *Config) { c.MaxHotStates = n }
}

// WithMaxCheckpointStates overrides MaxCheckpointStates.
func WithMaxCheckpointStates(n int) Option {
	return func(c *Config) { c.MaxCheckpointStates = n }
}

// WithCheckpointRetentionEpochs overrides CheckpointRetentionEpochs.
func WithCheckpointRetentionEpochs(n int) Option {
	return func(c *Config) { c.CheckpointRetentionEpochs = n }
}

// WithCPUOffloadThresholdSlots overrides CPUOffloadThresholdSlots.
func WithCPUOffloadThresholdSlots(n int) Option {
	return func(c *Config) { c.CPUOffloadThresholdSlots = n }
}
