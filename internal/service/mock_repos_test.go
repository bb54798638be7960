package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/internal/model"
)

// ── mock AccountRepository ──

type mockAccountRepo struct {
	accounts map[uint]*model.Account
	nextID   uint
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[uint]*model.Account), nextID: 1}
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	for _, a := range m.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	account.ID = m.nextID
	m.nextID++
	m.accounts[account.ID] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id uint) (*model.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── mock ParticipantRepository ──

type mockParticipantRepo struct {
	participants map[uint]*model.Participant
	nextID       uint
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{participants: make(map[uint]*model.Participant), nextID: 1}
}

func (m *mockParticipantRepo) Create(_ context.Context, participant *model.Participant) error {
	for _, p := range m.participants {
		if p.Email == participant.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	participant.ID = m.nextID
	m.nextID++
	m.participants[participant.ID] = participant
	return nil
}

func (m *mockParticipantRepo) GetByID(_ context.Context, id uint) (*model.Participant, error) {
	if p, ok := m.participants[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) GetByEmail(_ context.Context, email string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) Update(_ context.Context, participant *model.Participant) error {
	m.participants[participant.ID] = participant
	return nil
}

func (m *mockParticipantRepo) List(_ context.Context, offset, limit int) ([]model.Participant, int64, error) {
	ids := make([]uint, 0, len(m.participants))
	for id := range m.participants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []model.Participant
	for i, id := range ids {
		if i < offset || len(result) >= limit {
			continue
		}
		result = append(result, *m.participants[id])
	}
	return result, int64(len(m.participants)), nil
}

func (m *mockParticipantRepo) Delete(_ context.Context, id uint) error {
	delete(m.participants, id)
	return nil
}

// ── mock RaffleRepository ──

type mockRaffleRepo struct {
	raffles map[uint]*model.Raffle
	nextID  uint
}

func newMockRaffleRepo() *mockRaffleRepo {
	return &mockRaffleRepo{raffles: make(map[uint]*model.Raffle), nextID: 1}
}

func (m *mockRaffleRepo) Create(_ context.Context, raffle *model.Raffle) error {
	for _, r := range m.raffles {
		if r.Name == raffle.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	raffle.ID = m.nextID
	m.nextID++
	m.raffles[raffle.ID] = raffle
	return nil
}

func (m *mockRaffleRepo) GetByID(_ context.Context, id uint) (*model.Raffle, error) {
	if r, ok := m.raffles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRaffleRepo) GetActive(_ context.Context) (*model.Raffle, error) {
	for _, r := range m.raffles {
		if r.Active {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRaffleRepo) ListActive(_ context.Context) ([]model.Raffle, error) {
	var result []model.Raffle
	for _, r := range m.raffles {
		if r.Active {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRaffleRepo) List(_ context.Context, offset, limit int) ([]model.Raffle, int64, error) {
	ids := make([]uint, 0, len(m.raffles))
	for id := range m.raffles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []model.Raffle
	for i, id := range ids {
		if i < offset || len(result) >= limit {
			continue
		}
		result = append(result, *m.raffles[id])
	}
	return result, int64(len(m.raffles)), nil
}

func (m *mockRaffleRepo) Update(_ context.Context, raffle *model.Raffle) error {
	m.raffles[raffle.ID] = raffle
	return nil
}

func (m *mockRaffleRepo) Delete(_ context.Context, id uint) error {
	delete(m.raffles, id)
	return nil
}

func (m *mockRaffleRepo) ClearActive(_ context.Context) error {
	for _, r := range m.raffles {
		r.Active = false
	}
	return nil
}

// ── mock RaffleNumberRepository ──

// mockRaffleNumberRepo enforces the (number, raffle) uniqueness the way the
// storage index does, so allocation-conflict paths are exercisable.
// conflictNextN forces the next N CreateBatch calls to fail with a duplicate
// key, simulating a concurrent writer.
type mockRaffleNumberRepo struct {
	numbers       map[uint]*model.RaffleNumber
	nextID        uint
	conflictNextN int
}

func newMockRaffleNumberRepo() *mockRaffleNumberRepo {
	return &mockRaffleNumberRepo{numbers: make(map[uint]*model.RaffleNumber), nextID: 1}
}

func (m *mockRaffleNumberRepo) CreateBatch(_ context.Context, batch []model.RaffleNumber) error {
	if m.conflictNextN > 0 {
		m.conflictNextN--
		return gorm.ErrDuplicatedKey
	}
	seen := make(map[string]bool)
	for _, n := range m.numbers {
		seen[key(n.RaffleID, n.Number)] = true
	}
	for i := range batch {
		k := key(batch[i].RaffleID, batch[i].Number)
		if seen[k] {
			return gorm.ErrDuplicatedKey
		}
		seen[k] = true
	}
	for i := range batch {
		row := batch[i]
		row.ID = m.nextID
		m.nextID++
		m.numbers[row.ID] = &row
	}
	return nil
}

func key(raffleID uint, number string) string {
	return fmt.Sprintf("%d:%s", raffleID, number)
}

func (m *mockRaffleNumberRepo) GetByID(_ context.Context, id uint) (*model.RaffleNumber, error) {
	if n, ok := m.numbers[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRaffleNumberRepo) UsedNumbers(_ context.Context, raffleID uint) ([]string, error) {
	var used []string
	for _, n := range m.numbers {
		if n.RaffleID == raffleID {
			used = append(used, n.Number)
		}
	}
	return used, nil
}

func (m *mockRaffleNumberRepo) CountByRaffle(_ context.Context, raffleID uint) (int64, error) {
	var count int64
	for _, n := range m.numbers {
		if n.RaffleID == raffleID {
			count++
		}
	}
	return count, nil
}

func (m *mockRaffleNumberRepo) ListByParticipant(_ context.Context, participantID uint) ([]model.RaffleNumber, error) {
	var result []model.RaffleNumber
	for _, n := range m.numbers {
		if n.ParticipantID == participantID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *mockRaffleNumberRepo) List(_ context.Context, raffleID *uint, offset, limit int) ([]model.RaffleNumber, int64, error) {
	var all []model.RaffleNumber
	for _, n := range m.numbers {
		if raffleID != nil && n.RaffleID != *raffleID {
			continue
		}
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockRaffleNumberRepo) ListAll(_ context.Context) ([]model.RaffleNumber, error) {
	var all []model.RaffleNumber
	for _, n := range m.numbers {
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (m *mockRaffleNumberRepo) Delete(_ context.Context, id uint) error {
	delete(m.numbers, id)
	return nil
}

// ── mock Mailer ──

type mockMailer struct {
	sent     int
	lastTo   string
	lastNum  []string
	lastBank string
	err      error
}

func (m *mockMailer) SendNumbers(to, _ string, numbers []string, _, bankAccount string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	m.lastTo = to
	m.lastNum = numbers
	m.lastBank = bankAccount
	return nil
}

// ── mock RateClient ──

type mockRateClient struct {
	rate float64
	err  error
}

func (m *mockRateClient) Rate(_ context.Context) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rate, nil
}

func (m *mockRateClient) Currency() string { return "VES" }

var errMockMail = errors.New("smtp unreachable")
