package cli

import (
	"context"
	"fmt"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/storage/snapshot"
)

type testSwiggyAPI struct {
	docs  map[string]map[string]any
	fails map[string]bool
	calls []string
}

func (m *testSwiggyAPI) MenuPage(_ context.Context, restaurantID string) (map[string]any, error) {
	m.calls = append(m.calls, restaurantID)
	if m.fails[restaurantID] {
		return nil, fmt.Errorf("upstream down")
	}
	doc, ok := m.docs[restaurantID]
	if !ok {
		return map[string]any{}, nil
	}
	return doc, nil
}

type testClients struct {
	client domain.Client
	err    error
}

func (m *testClients) Find(context.Context, string) (domain.Client, error) {
	if m.err != nil {
		return domain.Client{}, m.err
	}
	return m.client, nil
}

type testConfigManager struct {
	cfg     domain.Config
	loadErr error
	saveErr error
}

func (m *testConfigManager) Path() string {
	return "/tmp/test-config.json"
}

func (m *testConfigManager) Load(context.Context) (domain.Config, error) {
	if m.loadErr != nil {
		return domain.Config{}, m.loadErr
	}
	return m.cfg, nil
}

func (m *testConfigManager) Save(_ context.Context, cfg domain.Config) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = cfg
	m.loadErr = nil
	return nil
}

type savedRun struct {
	client        string
	restaurantIDs []string
	itemCount     int
	offers        []domain.Offer
}

type testSnapshots struct {
	runs      []snapshot.Run
	runOffers map[int64][]domain.Offer
	saveErr   error
	saved     []savedRun
	nextRunID int64
}

func (m *testSnapshots) SaveRun(_ context.Context, client string, restaurantIDs []string, itemCount int, offers []domain.Offer) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.saved = append(m.saved, savedRun{client: client, restaurantIDs: restaurantIDs, itemCount: itemCount, offers: offers})
	m.nextRunID++
	return m.nextRunID, nil
}

func (m *testSnapshots) History(_ context.Context, limit int) ([]snapshot.Run, error) {
	if limit > 0 && limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *testSnapshots) RunOffers(_ context.Context, runID int64) ([]domain.Offer, error) {
	offers, ok := m.runOffers[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", snapshot.ErrRunNotFound, runID)
	}
	return offers, nil
}

func testMenuDoc(name, id, offerTitle, offerCode string) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"cards": []any{
				map[string]any{"card": map[string]any{"card": map[string]any{"info": map[string]any{
					"name": name, "id": id, "areaName": "Andheri East",
				}}}},
				map[string]any{"card": map[string]any{"card": map[string]any{
					"offers": []any{map[string]any{"info": map[string]any{
						"header": offerTitle, "couponCode": offerCode,
					}}},
				}}},
				map[string]any{"groupedCard": map[string]any{"cardGroupMap": map[string]any{"REGULAR": map[string]any{
					"cards": []any{map[string]any{"card": map[string]any{"card": map[string]any{
						"categories": []any{map[string]any{
							"title": "Mains",
							"itemCards": []any{map[string]any{"card": map[string]any{"info": map[string]any{
								"name": "Burger", "price": 15000,
							}}}},
						}},
					}}}},
				}}}},
			},
		},
	}
}
