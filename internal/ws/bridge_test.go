package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas_balance/internal/balance"
	"gas_balance/internal/model"
)

func newTestBridge() (*Bridge, *Client) {
	hub := NewHub()
	client := &Client{hub: hub, send: make(chan []byte, 256)}
	hub.Register(client)
	bridge := NewBridge(hub)
	return bridge, client
}

func receiveEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	msg := <-c.send
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestBridge_OnStage(t *testing.T) {
	bridge, client := newTestBridge()

	bridge.OnStage(balance.StageEvent{
		Scenario: "russ-share-0_lng-add-965_demand-reduction_no-slack",
		Stage:    balance.StageSolve,
		Detail:   "13140 hours",
	})

	env := receiveEnvelope(t, client)
	assert.Equal(t, TypeRunStage, env.Type)

	var p RunStagePayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, "russ-share-0_lng-add-965_demand-reduction_no-slack", p.Scenario)
	assert.Equal(t, "solve", p.Stage)
	assert.Equal(t, "13140 hours", p.Detail)
}

func TestBridge_OnSummary(t *testing.T) {
	bridge, client := newTestBridge()

	bridge.OnSummary(balance.Summary{
		Scenario:  "russ-share-0_lng-add-0_no-demand-reduction_no-slack",
		Status:    "optimal",
		Objective: -123.4,
		Demand: []balance.StreamSummary{
			{Stream: model.StreamDomDem, Demand: 1389, Served: 1380, Unserved: 9, Flagged: true},
		},
		Supply: []balance.StreamSummary{
			{Stream: model.StreamLNGImp, Demand: 1314, Served: 1314},
		},
		InitialSoc:   547.8,
		FinalSoc:     230.1,
		SlackTotal:   0,
		SolveSeconds: 42.5,
	})

	env := receiveEnvelope(t, client)
	assert.Equal(t, TypeRunSummary, env.Type)

	var p balance.Summary
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, "optimal", p.Status)
	assert.InDelta(t, -123.4, p.Objective, 0.001)
	require.Len(t, p.Demand, 1)
	assert.Equal(t, model.StreamDomDem, p.Demand[0].Stream)
	assert.InDelta(t, 9.0, p.Demand[0].Unserved, 0.001)
	assert.True(t, p.Demand[0].Flagged)
	assert.InDelta(t, 547.8, p.InitialSoc, 0.001)
	assert.InDelta(t, 42.5, p.SolveSeconds, 0.001)
}
