// Package memstore provides in-memory implementations of the service store interfaces
// for tests. They follow the MongoDB repositories' semantics, including unique keys and
// the conditioned purchase update.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one lock.
type Store struct {
	mu sync.Mutex

	users       map[primitive.ObjectID]models.User
	packages    map[primitive.ObjectID]models.Package
	purchases   map[primitive.ObjectID]models.Purchase
	bookmarks   map[primitive.ObjectID]models.Bookmark
	reviews     map[primitive.ObjectID]models.Review
	payments    map[primitive.ObjectID]models.Payment
	experiences map[primitive.ObjectID]models.Experience

	// Calls counts store operations by name so tests can assert cache hits.
	Calls map[string]int
}

func New() *Store {
	return &Store{
		users:       map[primitive.ObjectID]models.User{},
		packages:    map[primitive.ObjectID]models.Package{},
		purchases:   map[primitive.ObjectID]models.Purchase{},
		bookmarks:   map[primitive.ObjectID]models.Bookmark{},
		reviews:     map[primitive.ObjectID]models.Review{},
		payments:    map[primitive.ObjectID]models.Payment{},
		experiences: map[primitive.ObjectID]models.Experience{},
		Calls:       map[string]int{},
	}
}

func (s *Store) call(name string) {
	s.Calls[name]++
}

func (s *Store) Users() *Users             { return &Users{s} }
func (s *Store) Packages() *Packages       { return &Packages{s} }
func (s *Store) Purchases() *Purchases     { return &Purchases{s} }
func (s *Store) Bookmarks() *Bookmarks     { return &Bookmarks{s} }
func (s *Store) Reviews() *Reviews         { return &Reviews{s} }
func (s *Store) Payments() *Payments       { return &Payments{s} }
func (s *Store) Experiences() *Experiences { return &Experiences{s} }

func values[T any](m map[primitive.ObjectID]T, keep func(T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Users

type Users struct{ s *Store }

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, usr := range u.s.users {
		if usr.Email == email {
			usr := usr
			return &usr, nil
		}
	}
	return nil, common.ErrNotFound
}

func (u *Users) List(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return values(u.s.users, nil), nil
}

func (u *Users) CreateIfAbsent(ctx context.Context, in *models.User) (primitive.ObjectID, bool, error) {
	if _, err := u.FindByEmail(ctx, in.Email); err == nil {
		return primitive.NilObjectID, false, nil
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	in.ID = primitive.NewObjectID()
	u.s.users[in.ID] = *in
	return in.ID, true, nil
}

func (u *Users) UpsertFederated(ctx context.Context, in *models.User) (primitive.ObjectID, bool, error) {
	existing, err := u.FindByEmail(ctx, in.Email)
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err == nil {
		existing.Name = in.Name
		existing.PhotoURL = in.PhotoURL
		existing.EmailVerified = true
		u.s.users[existing.ID] = *existing
		return primitive.NilObjectID, false, nil
	}
	in.ID = primitive.NewObjectID()
	in.EmailVerified = true
	u.s.users[in.ID] = *in
	return in.ID, true, nil
}

func (u *Users) UpdateImages(_ context.Context, id primitive.ObjectID, images models.ProfileImages) (models.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	before := usr
	if images.CoverImage != "" {
		usr.CoverImage = images.CoverImage
	}
	if images.ProfileImage != "" {
		usr.ProfileImage = images.ProfileImage
	}
	u.s.users[id] = usr
	res := models.UpdateResult{MatchedCount: 1}
	if usr.CoverImage != before.CoverImage || usr.ProfileImage != before.ProfileImage {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (u *Users) MarkVerified(ctx context.Context, email string) (models.UpdateResult, error) {
	usr, err := u.FindByEmail(ctx, email)
	if err != nil {
		return models.UpdateResult{}, nil
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr.EmailVerified = true
	u.s.users[usr.ID] = *usr
	return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (u *Users) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	usr.Role = role
	u.s.users[id] = usr
	return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// Packages

type Packages struct{ s *Store }

func (p *Packages) List(_ context.Context) ([]models.Package, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.call("packages.List")
	return values(p.s.packages, nil), nil
}

func (p *Packages) Get(_ context.Context, id primitive.ObjectID) (*models.Package, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.call("packages.Get")
	pkg, ok := p.s.packages[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &pkg, nil
}

func (p *Packages) Create(_ context.Context, pkg *models.Package) (primitive.ObjectID, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	pkg.ID = primitive.NewObjectID()
	p.s.packages[pkg.ID] = *pkg
	return pkg.ID, nil
}

func (p *Packages) Update(_ context.Context, id primitive.ObjectID, pkg *models.Package) (models.UpdateResult, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.packages[id]; !ok {
		return models.UpdateResult{}, nil
	}
	updated := *pkg
	updated.ID = id
	p.s.packages[id] = updated
	return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (p *Packages) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.packages[id]; !ok {
		return models.DeleteResult{}, nil
	}
	delete(p.s.packages, id)
	return models.DeleteResult{DeletedCount: 1}, nil
}

// Purchases

type Purchases struct{ s *Store }

func newestPurchases(list []models.Purchase) []models.Purchase {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func (p *Purchases) ListByEmail(_ context.Context, email string) ([]models.Purchase, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return newestPurchases(values(p.s.purchases, func(v models.Purchase) bool { return v.UserEmail == email })), nil
}

func (p *Purchases) ListAll(_ context.Context) ([]models.Purchase, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return newestPurchases(values(p.s.purchases, nil)), nil
}

func (p *Purchases) Get(_ context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	v, ok := p.s.purchases[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &v, nil
}

func (p *Purchases) Exists(_ context.Context, email, packageID string) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return len(values(p.s.purchases, func(v models.Purchase) bool {
		return v.UserEmail == email && v.PackageID == packageID
	})) > 0, nil
}

func (p *Purchases) Count(_ context.Context, email string) (int64, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return int64(len(values(p.s.purchases, func(v models.Purchase) bool { return v.UserEmail == email }))), nil
}

func (p *Purchases) Create(ctx context.Context, in *models.Purchase) (primitive.ObjectID, error) {
	if ok, _ := p.Exists(ctx, in.UserEmail, in.PackageID); ok {
		return primitive.NilObjectID, common.ErrConflict
	}
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	in.ID = primitive.NewObjectID()
	p.s.purchases[in.ID] = *in
	return in.ID, nil
}

func (p *Purchases) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.purchases[id]; !ok {
		return models.DeleteResult{}, nil
	}
	delete(p.s.purchases, id)
	return models.DeleteResult{DeletedCount: 1}, nil
}

// Bookmarks

type Bookmarks struct{ s *Store }

func (b *Bookmarks) ListByEmail(_ context.Context, email string) ([]models.Bookmark, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return values(b.s.bookmarks, func(v models.Bookmark) bool { return v.UserEmail == email }), nil
}

func (b *Bookmarks) ListAll(_ context.Context) ([]models.Bookmark, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return values(b.s.bookmarks, nil), nil
}

func (b *Bookmarks) Exists(_ context.Context, email, packageID string) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return len(values(b.s.bookmarks, func(v models.Bookmark) bool {
		return v.UserEmail == email && v.PackageID == packageID
	})) > 0, nil
}

func (b *Bookmarks) Create(ctx context.Context, in *models.Bookmark) (primitive.ObjectID, error) {
	if ok, _ := b.Exists(ctx, in.UserEmail, in.PackageID); ok {
		return primitive.NilObjectID, common.ErrConflict
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	in.ID = primitive.NewObjectID()
	b.s.bookmarks[in.ID] = *in
	return in.ID, nil
}

func (b *Bookmarks) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if _, ok := b.s.bookmarks[id]; !ok {
		return models.DeleteResult{}, nil
	}
	delete(b.s.bookmarks, id)
	return models.DeleteResult{DeletedCount: 1}, nil
}

// Reviews

type Reviews struct{ s *Store }

func (r *Reviews) List(_ context.Context, packageID, userEmail string) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := values(r.s.reviews, func(v models.Review) bool {
		return (packageID == "" || v.PackageID == packageID) && (userEmail == "" || v.UserEmail == userEmail)
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *Reviews) Average(_ context.Context, packageID string) (models.RatingSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.call("reviews.Average")
	var sum models.RatingSummary
	total := 0
	for _, v := range r.s.reviews {
		if v.PackageID == packageID {
			total += v.Rating
			sum.TotalReviews++
		}
	}
	if sum.TotalReviews > 0 {
		sum.AvgRating = float64(total) / float64(sum.TotalReviews)
	}
	return sum, nil
}

func (r *Reviews) Create(_ context.Context, rv *models.Review) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv.ID = primitive.NewObjectID()
	r.s.reviews[rv.ID] = *rv
	return rv.ID, nil
}

func (r *Reviews) Update(_ context.Context, id primitive.ObjectID, comment string, rating int) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	rv.Comment = comment
	rv.Rating = rating
	r.s.reviews[id] = rv
	return &rv, nil
}

func (r *Reviews) Delete(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.s.reviews, id)
	return &rv, nil
}

// Payments

type Payments struct{ s *Store }

func (p *Payments) List(_ context.Context, email string) ([]models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	list := values(p.s.payments, func(v models.Payment) bool { return email == "" || v.Email == email })
	sort.Slice(list, func(i, j int) bool { return list[i].PaidAt.After(list[j].PaidAt) })
	return list, nil
}

// RecordForPurchase behaves like the transactional repository: both writes happen or
// neither does.
func (p *Payments) RecordForPurchase(_ context.Context, purchaseID primitive.ObjectID, in *models.Payment) (models.RecordResult, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	purchase, ok := p.s.purchases[purchaseID]
	if !ok || purchase.PaymentStatus == models.PaymentStatusPaid {
		return models.RecordResult{}, common.ErrNotFound
	}
	for _, existing := range p.s.payments {
		if existing.TransactionID == in.TransactionID {
			return models.RecordResult{}, common.ErrConflict
		}
	}

	purchase.PaymentStatus = models.PaymentStatusPaid
	p.s.purchases[purchaseID] = purchase

	in.ID = primitive.NewObjectID()
	if in.PaidAt.IsZero() {
		in.PaidAt = time.Now()
	}
	p.s.payments[in.ID] = *in
	return models.RecordResult{InsertedID: in.ID, Update: models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}}, nil
}

func (p *Payments) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	v, ok := p.s.payments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	v.Status = status
	p.s.payments[id] = v
	return &v, nil
}

// Seed helpers insert documents directly, bypassing uniqueness checks.

func (p *Payments) Seed(in models.Payment) primitive.ObjectID {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if in.ID.IsZero() {
		in.ID = primitive.NewObjectID()
	}
	p.s.payments[in.ID] = in
	return in.ID
}

// Experiences

type Experiences struct{ s *Store }

func (e *Experiences) List(_ context.Context) ([]models.Experience, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	return values(e.s.experiences, nil), nil
}

func (e *Experiences) Get(_ context.Context, id primitive.ObjectID) (*models.Experience, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	v, ok := e.s.experiences[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &v, nil
}

func (e *Experiences) Create(_ context.Context, in *models.Experience) (primitive.ObjectID, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	in.ID = primitive.NewObjectID()
	e.s.experiences[in.ID] = *in
	return in.ID, nil
}

func (e *Experiences) Update(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.UpdateResult, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	v, ok := e.s.experiences[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	if title, ok := fields["title"].(string); ok {
		v.Title = title
	}
	if image, ok := fields["image"].(string); ok {
		v.Image = image
	}
	if desc, ok := fields["description"].(string); ok {
		v.Description = desc
	}
	e.s.experiences[id] = v
	return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (e *Experiences) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if _, ok := e.s.experiences[id]; !ok {
		return models.DeleteResult{}, nil
	}
	delete(e.s.experiences, id)
	return models.DeleteResult{DeletedCount: 1}, nil
}
