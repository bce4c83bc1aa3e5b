package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

func (s *RepositorySuite) TestInsertAndQueryEvents() {
	now := time.Now().UTC().Truncate(time.Millisecond)

	minted := model.NewEvent(model.EventMinted, now)
	minted.Account = "acc-1"
	minted.IBAN = "CH9300762011623852957"
	minted.Amount = 25

	processed := model.NewEvent(model.EventStatementProcessed, now.Add(time.Second))
	processed.IBAN = "CH9300762011623852957"
	processed.FailedIndices = []int{2, 5}

	s.metrics.EXPECT().Observe("insert_events", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("events_by_kind", gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertEvents(s.testCtx, []model.Event{minted, processed}))
	s.Equal(uint64(2), s.countRows("ramp_events"))

	got, err := s.repo.EventsByKind(s.testCtx, model.EventStatementProcessed, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(processed.ID, got[0].ID)
	s.Equal([]int{2, 5}, got[0].FailedIndices)
	s.True(processed.OccurredAt.Equal(got[0].OccurredAt))

	got, err = s.repo.EventsByKind(s.testCtx, model.EventMinted, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(model.AccountID("acc-1"), got[0].Account)
	s.Equal(model.Amount(25), got[0].Amount)
	s.Nil(got[0].FailedIndices)
}

func (s *RepositorySuite) TestEventsByKindZeroLimit() {
	s.metrics.EXPECT().Observe("events_by_kind", gomock.Nil(), gomock.Any()).Times(1)

	got, err := s.repo.EventsByKind(s.testCtx, model.EventMinted, 0)
	s.Require().NoError(err)
	s.Empty(got)
}
