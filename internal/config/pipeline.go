package config

import "time"

// PipelineConfig drives the movies CLI.  Command-line flags override
// every field.
type PipelineConfig struct {
	RawDir    string
	DataDir   string
	LogMode   string
	AMQPURL   string
	Publish   bool // announce pipeline.completed after a successful run
	Movies    int
	SalesDays int
	SalesTop  int
	Seed      uint64
	Timeout   time.Duration
}

func LoadPipeline() PipelineConfig {
	return PipelineConfig{
		RawDir:    envStr("RAW_DIR", "data/raw"),
		DataDir:   envStr("DATA_DIR", "data/processed"),
		LogMode:   envStr("LOG_MODE", "dev"),
		AMQPURL:   AMQPURL(),
		Publish:   envBool("PIPELINE_PUBLISH", false),
		Movies:    envInt("GEN_MOVIES", 500),
		SalesDays: envInt("GEN_SALES_DAYS", 365),
		SalesTop:  envInt("GEN_SALES_TOP", 20),
		Seed:      uint64(envInt("GEN_SEED", 42)),
		Timeout:   envDur("PIPELINE_TIMEOUT", 5*time.Minute),
	}
}
