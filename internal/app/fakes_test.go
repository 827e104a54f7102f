package app

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/joboffer"
	"jobboard/internal/domain/postulation"
	"jobboard/internal/domain/profile"
	"jobboard/internal/domain/user"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == account.Username || existing.Email == account.Email {
			return nil, common.NewError(common.CodeConflict, "user already exists", nil)
		}
	}
	if account.ID == "" {
		account.ID = common.NewUUID()
	}
	r.byID[account.ID] = cloneUser(&account)
	return cloneUser(&account), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byID {
		if account.Email == email {
			return cloneUser(account), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string, exclude common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, account := range r.byID {
		if id != exclude && account.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string, exclude common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, account := range r.byID {
		if id != exclude && account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[account.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	r.byID[account.ID] = cloneUser(&account)
	return cloneUser(&account), nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) RegisterFailedLogin(ctx context.Context, id common.UUID, at time.Time) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	account.FailedLoginAttempts++
	failedAt := at
	account.LastFailedLogin = &failedAt
	return cloneUser(account), nil
}

func (r *fakeUserRepo) RegisterSuccessfulLogin(ctx context.Context, id common.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	account.FailedLoginAttempts = 0
	loginAt := at
	account.LastLogin = &loginAt
	return nil
}

func (r *fakeUserRepo) stored(id common.UUID) user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *cloneUser(r.byID[id])
}

func cloneUser(account *user.User) *user.User {
	copy := *account
	return &copy
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[common.UUID]auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[common.UUID]auth.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id common.UUID) (*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	return &session, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, id common.UUID, revokedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	session.RevokedAt = &revokedAt
	r.sessions[id] = session
	return nil
}

func (r *fakeSessionRepo) DeleteInactive(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, session := range r.sessions {
		if !session.ExpiresAt.After(before) || (session.RevokedAt != nil && !session.RevokedAt.After(before)) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

type noopAnalyticsRepo struct{}

func (noopAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	return nil
}

type recordingAnalyticsRepo struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAnalyticsRepo) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, event := range r.events {
		names = append(names, event.Name)
	}
	return names
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]profile.StudentProfile
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{profiles: make(map[common.UUID]profile.StudentProfile)}
}

func (r *fakeStudentRepo) Create(ctx context.Context, item profile.StudentProfile) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.UserID == item.UserID {
			return nil, common.NewError(common.CodeConflict, "profile already exists", nil)
		}
	}
	if item.ID == "" {
		item.ID = common.NewUUID()
	}
	r.profiles[item.ID] = item
	return &item, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.profiles {
		if item.UserID == userID {
			copy := item
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.profiles[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	return &item, nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, item profile.StudentProfile) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[item.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	r.profiles[item.ID] = item
	return &item, nil
}

type fakeCompanyRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]profile.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{profiles: make(map[common.UUID]profile.CompanyProfile)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, item profile.CompanyProfile) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.UserID == item.UserID {
			return nil, common.NewError(common.CodeConflict, "profile already exists", nil)
		}
	}
	if item.ID == "" {
		item.ID = common.NewUUID()
	}
	r.profiles[item.ID] = item
	return &item, nil
}

func (r *fakeCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.profiles {
		if item.UserID == userID {
			copy := item
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
}

func (r *fakeCompanyRepo) Update(ctx context.Context, item profile.CompanyProfile) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[item.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	r.profiles[item.ID] = item
	return &item, nil
}

type fakeJobOfferRepo struct {
	mu     sync.Mutex
	offers map[common.UUID]joboffer.JobOffer
}

func newFakeJobOfferRepo() *fakeJobOfferRepo {
	return &fakeJobOfferRepo{offers: make(map[common.UUID]joboffer.JobOffer)}
}

func (r *fakeJobOfferRepo) Create(ctx context.Context, offer joboffer.JobOffer) (*joboffer.JobOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offer.ID == "" {
		offer.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	r.offers[offer.ID] = offer
	return &offer, nil
}

func (r *fakeJobOfferRepo) Update(ctx context.Context, offer joboffer.JobOffer) (*joboffer.JobOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[offer.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	offer.UpdatedAt = time.Now().UTC()
	r.offers[offer.ID] = offer
	return &offer, nil
}

func (r *fakeJobOfferRepo) GetByID(ctx context.Context, id common.UUID) (*joboffer.JobOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	return &offer, nil
}

func (r *fakeJobOfferRepo) ExistsByTitle(ctx context.Context, companyID common.UUID, title string, exclude common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, offer := range r.offers {
		if id != exclude && offer.CompanyID == companyID && offer.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobOfferRepo) Close(ctx context.Context, id common.UUID) (*joboffer.JobOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	offer.IsClosed = true
	r.offers[id] = offer
	return &offer, nil
}

func (r *fakeJobOfferRepo) List(ctx context.Context, filter joboffer.Filter, page common.PageRequest) ([]joboffer.JobOffer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []joboffer.JobOffer
	for _, offer := range r.offers {
		if filter.Location != "" && !strings.Contains(strings.ToLower(offer.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.IsClosed != nil && offer.IsClosed != *filter.IsClosed {
			continue
		}
		matched = append(matched, offer)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *fakeJobOfferRepo) add(offer joboffer.JobOffer) joboffer.JobOffer {
	created, _ := r.Create(context.Background(), offer)
	return *created
}

type fakePostulationRepo struct {
	mu    sync.Mutex
	items map[common.UUID]postulation.Postulation
}

func newFakePostulationRepo() *fakePostulationRepo {
	return &fakePostulationRepo{items: make(map[common.UUID]postulation.Postulation)}
}

func (r *fakePostulationRepo) Create(ctx context.Context, item postulation.Postulation) (*postulation.Postulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.JobOfferID == item.JobOfferID && existing.StudentID == item.StudentID {
			return nil, common.NewError(common.CodeConflict, "postulation already exists", nil)
		}
	}
	if item.ID == "" {
		item.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	item.AppliedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return &item, nil
}

func (r *fakePostulationRepo) FindByJobOfferAndStudent(ctx context.Context, jobOfferID, studentID common.UUID) (*postulation.Postulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.JobOfferID == jobOfferID && item.StudentID == studentID {
			copy := item
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "Data not found.", nil)
}

func (r *fakePostulationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "Data not found.", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakePostulationRepo) ListByJobOffer(ctx context.Context, jobOfferID common.UUID, page common.PageRequest) ([]postulation.Postulation, int64, error) {
	return r.list(func(item postulation.Postulation) bool { return item.JobOfferID == jobOfferID }, page)
}

func (r *fakePostulationRepo) ListByStudent(ctx context.Context, studentID common.UUID, page common.PageRequest) ([]postulation.Postulation, int64, error) {
	return r.list(func(item postulation.Postulation) bool { return item.StudentID == studentID }, page)
}

func (r *fakePostulationRepo) list(match func(postulation.Postulation) bool, page common.PageRequest) ([]postulation.Postulation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []postulation.Postulation
	for _, item := range r.items {
		if match(item) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *fakePostulationRepo) UpdateStatuses(ctx context.Context, jobOfferID common.UUID, statuses map[common.UUID]postulation.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range statuses {
		item, ok := r.items[id]
		if !ok || item.JobOfferID != jobOfferID {
			return common.NewError(common.CodeNotFound, "Data not found.", nil)
		}
	}
	for id, status := range statuses {
		item := r.items[id]
		item.Status = status
		r.items[id] = item
	}
	return nil
}

func (r *fakePostulationRepo) get(id common.UUID) postulation.Postulation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

func paginate[T any](items []T, page common.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeUploader struct {
	url      string
	err      error
	uploaded []string
}

func (u *fakeUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if _, err := io.ReadAll(content); err != nil {
		return "", err
	}
	u.uploaded = append(u.uploaded, filename)
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

var errUploadFailed = errors.New("storage unavailable")

func strPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}
