package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redpanda-data/benthos/v4/public/service"

	"github.com/twinfer/postal-plugin/pkg/postal"
)

const (
	modeNormalize = "normalize"
	modeParse     = "parse"
)

// addressClient is the slice of the postal API the processor needs.
type addressClient interface {
	Normalize(ctx context.Context, input string) ([]string, error)
	Parse(ctx context.Context, input string) (map[string]any, error)
}

// PostalProcessor is a Benthos processor that normalizes or parses postal
// addresses using libpostal.
type PostalProcessor struct {
	config      PostalConfig
	client      addressClient
	logger      *service.Logger
	mNormalized *service.MetricCounter
	mParsed     *service.MetricCounter
	mErrors     *service.MetricCounter
}

// PostalConfig contains configuration parameters for the postal processor.
type PostalConfig struct {
	Mode string `json:"mode" yaml:"mode"`
}

func init() {
	// Register the processor with Benthos
	err := service.RegisterProcessor(
		"postal",
		postalProcessorConfig(),
		func(conf *service.ParsedConfig, mgr *service.Resources) (service.Processor, error) {
			return newPostalProcessorFromConfig(conf, mgr)
		},
	)
	if err != nil {
		panic(err)
	}
}

// postalProcessorConfig returns a config spec for a postal processor.
func postalProcessorConfig() *service.ConfigSpec {
	return service.NewConfigSpec().
		Summary("Normalizes or parses postal addresses using libpostal.").
		Description("In normalize mode the message body is replaced with the ordered array of normalized address variants. In parse mode it is replaced with an object holding one entry per address component label emitted by libpostal.").
		Field(service.NewStringEnumField("mode", modeNormalize, modeParse).
			Description("Whether to normalize the address into variants or parse it into labeled components.").
			Default(modeNormalize)).
		Version("0.1.0")
}

// newPostalProcessorFromConfig creates a new PostalProcessor from a parsed config.
func newPostalProcessorFromConfig(conf *service.ParsedConfig, mgr *service.Resources) (*PostalProcessor, error) {
	mode, err := conf.FieldString("mode")
	if err != nil {
		return nil, err
	}

	metrics := mgr.Metrics()

	return &PostalProcessor{
		config:      PostalConfig{Mode: mode},
		client:      postal.Default(),
		logger:      mgr.Logger(),
		mNormalized: metrics.NewCounter("postal_normalized_messages"),
		mParsed:     metrics.NewCounter("postal_parsed_messages"),
		mErrors:     metrics.NewCounter("postal_processing_errors"),
	}, nil
}

// Process applies address normalization or parsing to a message.
func (p *PostalProcessor) Process(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	raw, err := msg.AsBytes()
	if err != nil {
		p.logger.Errorf("Failed to get address text from message: %v", err)
		p.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to get address text from message: %w", err))
		return service.MessageBatch{msg}, nil
	}

	input := string(raw)

	var payload any
	switch p.config.Mode {
	case modeParse:
		doc, err := p.client.Parse(ctx, input)
		if err != nil {
			p.logger.Errorf("Failed to parse address: %v", err)
			p.mErrors.Incr(1)
			msg.SetError(fmt.Errorf("failed to parse address: %w", err))
			return service.MessageBatch{msg}, nil
		}
		p.mParsed.Incr(1)
		p.logger.Debugf("Parsed address into %d components", len(doc))
		payload = doc
	default:
		variants, err := p.client.Normalize(ctx, input)
		if err != nil {
			p.logger.Errorf("Failed to normalize address: %v", err)
			p.mErrors.Incr(1)
			msg.SetError(fmt.Errorf("failed to normalize address: %w", err))
			return service.MessageBatch{msg}, nil
		}
		p.mNormalized.Incr(1)
		p.logger.Debugf("Normalized address into %d variants", len(variants))
		payload = variants
	}

	newMsg := service.NewMessage(nil)
	newMsg.SetStructured(payload)

	// Copy metadata from original message
	msg.MetaWalk(func(key, value string) error {
		newMsg.MetaSet(key, value)
		return nil
	})

	return service.MessageBatch{newMsg}, nil
}

// Close the processor resources. The engine lifecycle is process-wide and
// torn down in main, not per processor.
func (p *PostalProcessor) Close(ctx context.Context) error {
	return nil
}

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	if err := postal.Startup(postal.WithDataDir(os.Getenv("LIBPOSTAL_DATA_DIR"))); err != nil {
		fmt.Fprintf(os.Stderr, "postal-plugin: %v\n", err)
		os.Exit(1)
	}

	service.RunCLI(context.Background())

	postal.Shutdown()
}
