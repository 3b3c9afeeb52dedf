package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/infrastructure/cache"
	"fad/pkg/errors"
)

var (
	adminSession  = &entity.Session{UID: "admin-1", Email: "admin@fad.test", Role: entity.RoleAdmin}
	buyerSession  = &entity.Session{UID: "buyer-1", Email: "buyer@fad.test", Role: entity.RoleBuyer}
	vendorSession = &entity.Session{UID: "vendor-1", Email: "thrift.queen@fad.test", Role: entity.RoleVendor}
)

// freezeTime pins timeNow for the duration of the test.
func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	previous := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = previous })
}

func ptr(t time.Time) *time.Time {
	return &t
}

func casCheck(resource string, stored time.Time, expected *time.Time) error {
	if expected != nil && !expected.Equal(stored) {
		return errors.StaleWrite(resource, nil)
	}
	return nil
}

type memVendorRepo struct {
	mu         sync.Mutex
	vendors    map[string]*entity.Vendor
	failList   error
	failUpdate error
}

func newMemVendorRepo(vendors ...*entity.Vendor) *memVendorRepo {
	r := &memVendorRepo{vendors: map[string]*entity.Vendor{}}
	for _, v := range vendors {
		c := *v
		r.vendors[v.ID] = &c
	}
	return r
}

func (r *memVendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vendors[vendor.ID]; ok {
		return errors.Conflict("Vendor already exists")
	}
	c := *vendor
	r.vendors[vendor.ID] = &c
	return nil
}

func (r *memVendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, errors.NotFound("Vendor", nil)
	}
	c := *v
	return &c, nil
}

func (r *memVendorRepo) GetByInstagramHandle(ctx context.Context, handle string) (*entity.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	for _, v := range r.vendors {
		if strings.EqualFold(v.InstagramHandle, handle) {
			c := *v
			return &c, nil
		}
	}
	return nil, errors.NotFound("Vendor", nil)
}

func (r *memVendorRepo) List(ctx context.Context, filter repository.VendorFilter) ([]*entity.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList != nil {
		return nil, r.failList
	}
	out := []*entity.Vendor{}
	for _, v := range r.vendors {
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, v.VerificationStatus) {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memVendorRepo) Update(ctx context.Context, vendor *entity.Vendor, expected *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	stored, ok := r.vendors[vendor.ID]
	if !ok {
		return errors.NotFound("Vendor", nil)
	}
	if err := casCheck("Vendor", stored.UpdatedAt, expected); err != nil {
		return err
	}
	c := *vendor
	r.vendors[vendor.ID] = &c
	return nil
}

func (r *memVendorRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vendors, id)
	return nil
}

func (r *memVendorRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.vendors {
		if v.VerificationStatus == status {
			n++
		}
	}
	return n, nil
}

func (r *memVendorRepo) get(id string) *entity.Vendor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vendors[id]
}

type memCertRepo struct {
	mu         sync.Mutex
	certs      map[string]*entity.Certification
	failCreate error
	failGet    error
}

func newMemCertRepo(certs ...*entity.Certification) *memCertRepo {
	r := &memCertRepo{certs: map[string]*entity.Certification{}}
	for _, c := range certs {
		cc := *c
		r.certs[c.VendorID] = &cc
	}
	return r
}

func (r *memCertRepo) GetByVendorID(ctx context.Context, vendorID string) (*entity.Certification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	c, ok := r.certs[vendorID]
	if !ok {
		return nil, errors.NotFound("Certification", nil)
	}
	cc := *c
	return &cc, nil
}

func (r *memCertRepo) CreateIfAbsent(ctx context.Context, cert *entity.Certification) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return false, r.failCreate
	}
	if _, ok := r.certs[cert.VendorID]; ok {
		return false, nil
	}
	cc := *cert
	r.certs[cert.VendorID] = &cc
	return true, nil
}

func (r *memCertRepo) Upsert(ctx context.Context, cert *entity.Certification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cc := *cert
	r.certs[cert.VendorID] = &cc
	return nil
}

func (r *memCertRepo) List(ctx context.Context) ([]*entity.Certification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Certification{}
	for _, c := range r.certs {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

type memListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	updates  int
}

func newMemListingRepo(listings ...*entity.Listing) *memListingRepo {
	r := &memListingRepo{listings: map[string]*entity.Listing{}}
	for _, l := range listings {
		c := *l
		r.listings[l.ID] = &c
	}
	return r
}

func (r *memListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *listing
	r.listings[listing.ID] = &c
	return nil
}

func (r *memListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	c := *l
	return &c, nil
}

func (r *memListingRepo) List(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Listing{}
	for _, l := range r.listings {
		if filter.VendorID != "" && l.VendorID != filter.VendorID {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, l.ModerationStatus) {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memListingRepo) Update(ctx context.Context, listing *entity.Listing, expected *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.listings[listing.ID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	if err := casCheck("Listing", stored.UpdatedAt, expected); err != nil {
		return err
	}
	c := *listing
	r.listings[listing.ID] = &c
	r.updates++
	return nil
}

func (r *memListingRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.listings {
		if l.ModerationStatus == status {
			n++
		}
	}
	return n, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newMemReviewRepo(reviews ...*entity.Review) *memReviewRepo {
	r := &memReviewRepo{reviews: map[string]*entity.Review{}}
	for _, rv := range reviews {
		c := *rv
		r.reviews[rv.ID] = &c
	}
	return r
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *review
	r.reviews[review.ID] = &c
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	c := *rv
	return &c, nil
}

func (r *memReviewRepo) List(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Review{}
	for _, rv := range r.reviews {
		if filter.VendorID != "" && rv.VendorID != filter.VendorID {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, rv.ModerationStatus) {
			continue
		}
		if filter.FlaggedOnly && !rv.IsFlagged {
			continue
		}
		c := *rv
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memReviewRepo) Update(ctx context.Context, review *entity.Review, expected *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reviews[review.ID]
	if !ok {
		return errors.NotFound("Review", nil)
	}
	if err := casCheck("Review", stored.UpdatedAt, expected); err != nil {
		return err
	}
	c := *review
	r.reviews[review.ID] = &c
	return nil
}

func (r *memReviewRepo) CountFlagged(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rv := range r.reviews {
		if rv.IsFlagged {
			n++
		}
	}
	return n, nil
}

type memComplaintRepo struct {
	mu        sync.Mutex
	tickets   map[string]*entity.ComplaintTicket
	evidence  []*entity.Evidence
	failCount error
}

func newMemComplaintRepo(tickets ...*entity.ComplaintTicket) *memComplaintRepo {
	r := &memComplaintRepo{tickets: map[string]*entity.ComplaintTicket{}}
	for _, t := range tickets {
		c := *t
		r.tickets[t.ID] = &c
	}
	return r
}

func (r *memComplaintRepo) Create(ctx context.Context, ticket *entity.ComplaintTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *ticket
	r.tickets[ticket.ID] = &c
	return nil
}

func (r *memComplaintRepo) GetByID(ctx context.Context, id string) (*entity.ComplaintTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, errors.NotFound("Complaint", nil)
	}
	c := *t
	return &c, nil
}

func (r *memComplaintRepo) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.ComplaintTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ComplaintTicket{}
	for _, t := range r.tickets {
		if filter.VendorID != "" && t.VendorID != filter.VendorID {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, t.Status) {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memComplaintRepo) Update(ctx context.Context, ticket *entity.ComplaintTicket, expected *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return errors.NotFound("Complaint", nil)
	}
	if err := casCheck("Complaint", stored.UpdatedAt, expected); err != nil {
		return err
	}
	c := *ticket
	r.tickets[ticket.ID] = &c
	return nil
}

func (r *memComplaintRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCount != nil {
		return 0, r.failCount
	}
	var n int64
	for _, t := range r.tickets {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memComplaintRepo) TicketCodeExists(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.TicketCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memComplaintRepo) CreateEvidence(ctx context.Context, evidence *entity.Evidence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evidence = append(r.evidence, evidence)
	return nil
}

func (r *memComplaintRepo) ListEvidence(ctx context.Context, ticketID string) ([]*entity.Evidence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Evidence{}
	for _, e := range r.evidence {
		if e.TicketID == ticketID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memSubscriptionRepo struct {
	mu    sync.Mutex
	plans map[string]*entity.Plan
	subs  map[string]*entity.Subscription
	roi   map[string]*entity.ROIReport
}

func newMemSubscriptionRepo(plans ...*entity.Plan) *memSubscriptionRepo {
	r := &memSubscriptionRepo{
		plans: map[string]*entity.Plan{},
		subs:  map[string]*entity.Subscription{},
		roi:   map[string]*entity.ROIReport{},
	}
	for _, p := range plans {
		r.plans[p.ID] = p
	}
	return r
}

func (r *memSubscriptionRepo) ListActivePlans(ctx context.Context) ([]*entity.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Plan{}
	for _, p := range r.plans {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceMonthly < out[j].PriceMonthly })
	return out, nil
}

func (r *memSubscriptionRepo) GetPlan(ctx context.Context, id string) (*entity.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, errors.NotFound("Plan", nil)
	}
	return p, nil
}

func (r *memSubscriptionRepo) GetByVendorID(ctx context.Context, vendorID string) (*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[vendorID]
	if !ok {
		return nil, errors.NotFound("Subscription", nil)
	}
	c := *s
	return &c, nil
}

func (r *memSubscriptionRepo) Upsert(ctx context.Context, sub *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *sub
	r.subs[sub.VendorID] = &c
	return nil
}

func (r *memSubscriptionRepo) GetROIReport(ctx context.Context, vendorID string) (*entity.ROIReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rep, ok := r.roi[vendorID]; ok {
		return rep, nil
	}
	return &entity.ROIReport{VendorID: vendorID}, nil
}

type memCampaignRepo struct {
	mu         sync.Mutex
	campaigns  []*entity.Campaign
	failCreate error
}

func (r *memCampaignRepo) Create(ctx context.Context, campaign *entity.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.campaigns = append(r.campaigns, campaign)
	return nil
}

func (r *memCampaignRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.campaigns {
		if c.ID == id {
			r.campaigns = append(r.campaigns[:i], r.campaigns[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memCampaignRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Campaign{}
	for _, c := range r.campaigns {
		if c.VendorID == vendorID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memActivityRepo struct {
	mu         sync.Mutex
	entries    []*entity.ActivityLogEntry
	failCreate error
}

func (r *memActivityRepo) Create(ctx context.Context, entry *entity.ActivityLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ActivityLogEntry{}
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *memActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, e := range r.entries {
		out = append(out, e.ActionType)
	}
	return out
}

type memProfileRepo struct {
	mu         sync.Mutex
	profiles   map[string]*entity.Profile
	failCreate error
}

func newMemProfileRepo(profiles ...*entity.Profile) *memProfileRepo {
	r := &memProfileRepo{profiles: map[string]*entity.Profile{}}
	for _, p := range profiles {
		c := *p
		r.profiles[p.ID] = &c
	}
	return r
}

func (r *memProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	if _, ok := r.profiles[profile.ID]; ok {
		return errors.Conflict("Profile already exists")
	}
	c := *profile
	r.profiles[profile.ID] = &c
	return nil
}

func (r *memProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	c := *p
	return &c, nil
}

func (r *memProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *profile
	r.profiles[profile.ID] = &c
	return nil
}

func (r *memProfileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

type memAnalyticsRepo struct {
	delivery []*entity.DeliveryMetric
	history  []*entity.DripScorePoint
}

func (r *memAnalyticsRepo) ListDeliveryMetrics(ctx context.Context, vendorID string) ([]*entity.DeliveryMetric, error) {
	return r.delivery, nil
}

func (r *memAnalyticsRepo) ListDripScoreHistory(ctx context.Context, vendorID string, limit int) ([]*entity.DripScorePoint, error) {
	if len(r.history) > limit {
		return r.history[len(r.history)-limit:], nil
	}
	return r.history, nil
}

type memFileMetadataRepo struct {
	mu    sync.Mutex
	files map[string]*entity.FileMetadata
}

func newMemFileMetadataRepo() *memFileMetadataRepo {
	return &memFileMetadataRepo{files: map[string]*entity.FileMetadata{}}
}

func (r *memFileMetadataRepo) Create(ctx context.Context, metadata *entity.FileMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[metadata.ID] = metadata
	return nil
}

func (r *memFileMetadataRepo) GetByID(ctx context.Context, id string) (*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, errors.NotFound("File", nil)
	}
	return f, nil
}

func (r *memFileMetadataRepo) GetByEntityID(ctx context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.FileMetadata{}
	for _, f := range r.files {
		if f.EntityType == entityType && f.EntityID == entityID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFileMetadataRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

type mockFileService struct {
	mock.Mock
}

func (m *mockFileService) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	args := m.Called(ctx, file, fileType, folder, isPublic)
	return args.String(0), args.Error(1)
}

func (m *mockFileService) UploadObject(ctx context.Context, file io.Reader, fileType, objectName string, isPublic bool) (string, error) {
	args := m.Called(ctx, file, fileType, objectName, isPublic)
	return args.String(0), args.Error(1)
}

func (m *mockFileService) PublicURL(objectName string) string {
	return "https://storage.googleapis.com/fad-test/" + objectName
}

func (m *mockFileService) DeleteFile(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

func (m *mockFileService) Close() error {
	return nil
}

type mockAuthClient struct {
	mock.Mock
}

func (m *mockAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}

func (m *mockAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockAuthClient) SetRole(ctx context.Context, uid, role string) error {
	return m.Called(ctx, uid, role).Error(0)
}

func (m *mockAuthClient) VerifyToken(ctx context.Context, idToken string) (*entity.AuthToken, error) {
	args := m.Called(ctx, idToken)
	token, _ := args.Get(0).(*entity.AuthToken)
	return token, args.Error(1)
}

func (m *mockAuthClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthClient) RefreshIDToken(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

type fakeLimiter struct {
	deny map[string]bool
}

func (l *fakeLimiter) Allow(key, action string) (bool, time.Duration) {
	if l.deny[action] {
		return false, 42 * time.Second
	}
	return true, 0
}

// testEnv wires every use case against in-memory stores.
type testEnv struct {
	vendors    *memVendorRepo
	certs      *memCertRepo
	listings   *memListingRepo
	reviews    *memReviewRepo
	complaints *memComplaintRepo
	subs       *memSubscriptionRepo
	campaigns  *memCampaignRepo
	activity   *memActivityRepo
	profiles   *memProfileRepo
	analytics  *memAnalyticsRepo
	fileMeta   *memFileMetadataRepo
	storage    *mockFileService
	store      *cache.MemoryStore
	limiter    *fakeLimiter

	activityUC     *ActivityUseCase
	files          *FileUseCase
	vendorUC       *VendorUseCase
	certUC         *CertificationUseCase
	listingUC      *ListingUseCase
	reviewUC       *ReviewUseCase
	complaintUC    *ComplaintUseCase
	subscriptionUC *SubscriptionUseCase
	campaignUC     *CampaignUseCase
	dashboardUC    *DashboardUseCase
	analyticsUC    *AnalyticsUseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		vendors:    newMemVendorRepo(),
		certs:      newMemCertRepo(),
		listings:   newMemListingRepo(),
		reviews:    newMemReviewRepo(),
		complaints: newMemComplaintRepo(),
		subs:       newMemSubscriptionRepo(),
		campaigns:  &memCampaignRepo{},
		activity:   &memActivityRepo{},
		profiles:   newMemProfileRepo(),
		analytics:  &memAnalyticsRepo{},
		fileMeta:   newMemFileMetadataRepo(),
		storage:    &mockFileService{},
		store:      cache.NewMemoryStore(time.Minute),
		limiter:    &fakeLimiter{deny: map[string]bool{}},
	}
	env.wire(false)
	return env
}

func (env *testEnv) wire(autoPublish bool) {
	env.activityUC = NewActivityUseCase(env.activity, env.store, env.store)
	env.files = NewFileUseCase(env.storage, env.fileMeta, 0)
	env.vendorUC = NewVendorUseCase(env.vendors, env.certs, env.reviews, env.complaints, env.files, env.activityUC)
	env.certUC = NewCertificationUseCase(env.certs, env.vendors, env.activityUC)
	env.listingUC = NewListingUseCase(env.listings, env.vendors, env.activityUC)
	env.reviewUC = NewReviewUseCase(env.reviews, env.vendors, env.profiles, env.limiter, env.activityUC, autoPublish)
	env.complaintUC = NewComplaintUseCase(env.complaints, env.vendors, env.profiles, env.files, env.limiter, env.activityUC)
	env.subscriptionUC = NewSubscriptionUseCase(env.subs, env.vendors, env.activityUC)
	env.campaignUC = NewCampaignUseCase(env.campaigns, env.profiles, env.vendors, env.subscriptionUC)
	env.dashboardUC = NewDashboardUseCase(env.vendors, env.listings, env.reviews, env.complaints, env.activityUC, env.store)
	env.analyticsUC = NewAnalyticsUseCase(env.analytics, env.certs, env.complaints, env.vendors, nil)
}
