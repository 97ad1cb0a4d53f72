package cmd

import (
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"

	ibctesting "github.com/cosmos/ibc-handshake/testing"
)

// EndpointSummary describes the state one chain ended a run with.
type EndpointSummary struct {
	ChainID         string `yaml:"chain_id"`
	LatestHeight    string `yaml:"latest_height"`
	ClientID        string `yaml:"client_id"`
	ConnectionID    string `yaml:"connection_id"`
	ConnectionState string `yaml:"connection_state"`
	PortID          string `yaml:"port_id"`
	ChannelID       string `yaml:"channel_id"`
	ChannelState    string `yaml:"channel_state"`
	ChannelOrder    string `yaml:"channel_order"`
	Events          int    `yaml:"events"`
}

// Summary is the output of a handshake run.
type Summary struct {
	ChainA  EndpointSummary    `yaml:"chain_a"`
	ChainB  EndpointSummary    `yaml:"chain_b"`
	Metrics map[string]float64 `yaml:"metrics,omitempty"`
}

// RunHandshake builds both chains, creates a client on each, opens a connection and a
// channel and, when configured, closes the channel again.
func RunHandshake(cfg Config, logger log.Logger) (Summary, error) {
	order, err := parseOrder(cfg.Order)
	if err != nil {
		return Summary{}, err
	}

	var sink *metrics.InmemSink
	if cfg.Metrics {
		sink = metrics.NewInmemSink(time.Minute, 5*time.Minute)

		metricsConfig := metrics.DefaultConfig("ibcsim")
		metricsConfig.EnableHostname = false
		metricsConfig.EnableRuntimeMetrics = false
		if _, err := metrics.NewGlobal(metricsConfig, sink); err != nil {
			return Summary{}, errors.Wrap(err, "failed to install metrics sink")
		}
	}

	coord, err := ibctesting.NewCoordinator(cfg.ChainA, cfg.ChainB, logger)
	if err != nil {
		return Summary{}, err
	}

	path := coord.NewPath()
	for _, endpoint := range []*ibctesting.Endpoint{path.EndpointA, path.EndpointB} {
		endpoint.ChannelConfig.PortID = cfg.PortID
		endpoint.ChannelConfig.Order = order
	}

	if err := path.Setup(); err != nil {
		return Summary{}, errors.Wrap(err, "handshake failed")
	}
	if cfg.Close {
		if err := path.CloseChannel(); err != nil {
			return Summary{}, errors.Wrap(err, "channel close failed")
		}
	}

	var summary Summary
	if summary.ChainA, err = summarize(path.EndpointA); err != nil {
		return Summary{}, err
	}
	if summary.ChainB, err = summarize(path.EndpointB); err != nil {
		return Summary{}, err
	}
	if sink != nil {
		summary.Metrics = counters(sink)
	}

	return summary, nil
}

func summarize(endpoint *ibctesting.Endpoint) (EndpointSummary, error) {
	connection, err := endpoint.GetConnection()
	if err != nil {
		return EndpointSummary{}, err
	}
	channel, err := endpoint.GetChannel()
	if err != nil {
		return EndpointSummary{}, err
	}

	return EndpointSummary{
		ChainID:         endpoint.Chain.ChainID(),
		LatestHeight:    endpoint.Chain.LatestHeight().String(),
		ClientID:        endpoint.ClientID,
		ConnectionID:    endpoint.ConnectionID,
		ConnectionState: connection.State.String(),
		PortID:          endpoint.ChannelConfig.PortID,
		ChannelID:       endpoint.ChannelID,
		ChannelState:    channel.State.String(),
		ChannelOrder:    channel.Ordering.String(),
		Events:          len(endpoint.Chain.Events()),
	}, nil
}

// counters sums every counter the sink recorded by name, across labels and intervals.
func counters(sink *metrics.InmemSink) map[string]float64 {
	totals := make(map[string]float64)
	for _, interval := range sink.Data() {
		for _, counter := range interval.Counters {
			totals[counter.Name] += counter.Sum
		}
	}

	return totals
}
