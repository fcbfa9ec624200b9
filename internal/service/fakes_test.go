package service

import (
	"context"
	"sort"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repositories for service tests. They reproduce the two pieces of
// database behavior the services lean on: hooks run on every write, and the
// unique cart slot rejects a second created order for the same artwork.

type fakeArtworkRepo struct {
	nextID   uint64
	artworks map[uint64]model.Artwork
}

func newFakeArtworkRepo() *fakeArtworkRepo {
	return &fakeArtworkRepo{nextID: 1, artworks: map[uint64]model.Artwork{}}
}

func (r *fakeArtworkRepo) Create(ctx context.Context, a *model.Artwork) error {
	a.ID = r.nextID
	r.nextID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.artworks[a.ID] = *a
	return nil
}

func (r *fakeArtworkRepo) Save(ctx context.Context, a *model.Artwork) error {
	if _, ok := r.artworks[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.artworks[a.ID] = *a
	return nil
}

func (r *fakeArtworkRepo) Delete(ctx context.Context, id uint64) error {
	delete(r.artworks, id)
	return nil
}

func (r *fakeArtworkRepo) FindByID(ctx context.Context, id uint64) (*model.Artwork, error) {
	a, ok := r.artworks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeArtworkRepo) List(ctx context.Context, f repository.ArtworkFilter) ([]model.Artwork, int64, error) {
	var list []model.Artwork
	for _, a := range r.artworks {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.SellerID != nil && a.SellerID != *f.SellerID {
			continue
		}
		if f.CategoryID != nil && (a.CategoryID == nil || *a.CategoryID != *f.CategoryID) {
			continue
		}
		if f.ArtistID != nil && (a.ArtistID == nil || *a.ArtistID != *f.ArtistID) {
			continue
		}
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, int64(len(list)), nil
}

func (r *fakeArtworkRepo) SetStatus(ctx context.Context, id uint64, status model.ArtworkStatus) error {
	a, ok := r.artworks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	r.artworks[id] = a
	return nil
}

func (r *fakeArtworkRepo) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, a := range r.artworks {
		if a.Status == model.ArtworkStatusActive && !a.CreatedAt.After(cutoff) {
			a.Status = model.ArtworkStatusArchived
			r.artworks[id] = a
			n++
		}
	}
	return n, nil
}

func (r *fakeArtworkRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.artworks)), nil
}

func (r *fakeArtworkRepo) CountByArtist(ctx context.Context, artistID uint64) (int64, error) {
	var n int64
	for _, a := range r.artworks {
		if a.ArtistID != nil && *a.ArtistID == artistID {
			n++
		}
	}
	return n, nil
}

func (r *fakeArtworkRepo) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var n int64
	for _, a := range r.artworks {
		if a.CategoryID != nil && *a.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type fakeOrderRepo struct {
	nextID   uint64
	orders   map[uint64]model.Order
	payments map[uint64]model.Payment
	artworks *fakeArtworkRepo
}

func newFakeOrderRepo(artworks *fakeArtworkRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		nextID:   1,
		orders:   map[uint64]model.Order{},
		payments: map[uint64]model.Payment{},
		artworks: artworks,
	}
}

func (r *fakeOrderRepo) slotTaken(artworkID, exceptOrderID uint64) bool {
	for _, o := range r.orders {
		if o.ID != exceptOrderID && o.CartSlot != nil && *o.CartSlot == artworkID {
			return true
		}
	}
	return false
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *model.Order) error {
	if err := o.BeforeSave(nil); err != nil {
		return err
	}
	if o.CartSlot != nil && r.slotTaken(*o.CartSlot, 0) {
		return repository.ErrDuplicate
	}
	o.ID = r.nextID
	r.nextID++
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *model.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if err := o.BeforeSave(nil); err != nil {
		return err
	}
	if o.CartSlot != nil && r.slotTaken(*o.CartSlot, o.ID) {
		return repository.ErrDuplicate
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uint64) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error) {
	var list []model.Order
	for _, o := range r.orders {
		if o.BuyerID == buyerID {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeOrderRepo) ListByBuyerAndStatus(ctx context.Context, buyerID uint64, status model.OrderStatus) ([]model.Order, error) {
	var list []model.Order
	for _, o := range r.orders {
		if o.BuyerID == buyerID && o.Status == status {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeOrderRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Order, error) {
	var list []model.Order
	for _, o := range r.orders {
		a, ok := r.artworks.artworks[o.ArtworkID]
		if ok && a.SellerID == sellerID {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeOrderRepo) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var list []model.Order
	for _, o := range r.orders {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeOrderRepo) ExistsCreatedForArtwork(ctx context.Context, artworkID uint64) (bool, error) {
	for _, o := range r.orders {
		if o.ArtworkID == artworkID && o.Status == model.OrderStatusCreated {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, o := range r.orders {
		if o.Status == model.OrderStatusCreated && !o.CreatedAt.After(cutoff) {
			delete(r.orders, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) ConfirmPaid(ctx context.Context, o *model.Order, p *model.Payment) error {
	stored, ok := r.orders[o.ID]
	if !ok || stored.Status != model.OrderStatusCreated {
		return repository.ErrStaleState
	}
	a, ok := r.artworks.artworks[o.ArtworkID]
	if !ok || a.Status != model.ArtworkStatusActive {
		return repository.ErrStaleState
	}

	stored.Status = model.OrderStatusPaid
	stored.CartSlot = nil
	r.orders[o.ID] = stored
	a.Status = model.ArtworkStatusSold
	r.artworks.artworks[a.ID] = a
	if p != nil {
		if _, exists := r.payments[p.OrderID]; exists {
			return repository.ErrDuplicate
		}
		p.ID = uint64(len(r.payments) + 1)
		r.payments[p.OrderID] = *p
	}

	o.Status = model.OrderStatusPaid
	o.CartSlot = nil
	return nil
}

func (r *fakeOrderRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	byStatus := map[model.OrderStatus]int64{}
	for _, o := range r.orders {
		byStatus[o.Status]++
	}
	var counts []repository.StatusCount
	for status, n := range byStatus {
		counts = append(counts, repository.StatusCount{Status: status, Count: n})
	}
	return counts, nil
}

type fakePaymentRepo struct {
	orders *fakeOrderRepo
}

func newFakePaymentRepo(orders *fakeOrderRepo) *fakePaymentRepo {
	return &fakePaymentRepo{orders: orders}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if _, exists := r.orders.payments[p.OrderID]; exists {
		return repository.ErrDuplicate
	}
	p.ID = uint64(len(r.orders.payments) + 1)
	r.orders.payments[p.OrderID] = *p
	return nil
}

func (r *fakePaymentRepo) Save(ctx context.Context, p *model.Payment) error {
	r.orders.payments[p.OrderID] = *p
	return nil
}

func (r *fakePaymentRepo) FindByOrderID(ctx context.Context, orderID uint64) (*model.Payment, error) {
	p, ok := r.orders.payments[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

type fakeUserRepo struct {
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint64]model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Save(ctx context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			v := u
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			v := u
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	var list []model.User
	for _, u := range r.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, int64(len(list)), nil
}

func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeReviewRepo struct {
	nextID  uint64
	reviews map[uint64]model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1, reviews: map[uint64]model.Review{}}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	for _, existing := range r.reviews {
		if existing.OrderID == rv.OrderID {
			return repository.ErrDuplicate
		}
	}
	rv.ID = r.nextID
	r.nextID++
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) Save(ctx context.Context, rv *model.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uint64) (*model.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rv, nil
}

func (r *fakeReviewRepo) FindByOrderID(ctx context.Context, orderID uint64) (*model.Review, error) {
	for _, rv := range r.reviews {
		if rv.OrderID == orderID {
			v := rv
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) ListApproved(ctx context.Context, limit, offset int) ([]model.Review, error) {
	var list []model.Review
	for _, rv := range r.reviews {
		if rv.IsApproved {
			list = append(list, rv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeReviewRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Review, error) {
	var list []model.Review
	for _, rv := range r.reviews {
		if rv.SellerID == sellerID {
			list = append(list, rv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeReviewRepo) SellerAverage(ctx context.Context, sellerID uint64) (decimal.NullDecimal, int64, error) {
	sum := decimal.Zero
	var count int64
	for _, rv := range r.reviews {
		if rv.SellerID == sellerID {
			sum = sum.Add(decimal.NewFromInt(int64(rv.Rating)))
			count++
		}
	}
	if count == 0 {
		return decimal.NullDecimal{}, 0, nil
	}
	avg := sum.Div(decimal.NewFromInt(count))
	return decimal.NullDecimal{Decimal: avg, Valid: true}, count, nil
}
