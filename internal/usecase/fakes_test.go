package usecase

import (
	"context"
	"fmt"
	"sync"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/service"
	"gearswap/pkg/errors"
)

// In-memory fakes backing the usecase tests. They mirror the Firestore
// repositories' contract, including the compare-and-set semantics of
// UpdateStatus and NOT_FOUND mapping for missing documents.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) IncrementTotalSwaps(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.TotalSwaps++
	return nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*entity.Vehicle
}

func newFakeVehicleRepo(vehicles ...*entity.Vehicle) *fakeVehicleRepo {
	r := &fakeVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
	for _, v := range vehicles {
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vehicle.ID == "" {
		vehicle.ID = fmt.Sprintf("vehicle-%d", len(r.vehicles)+1)
	}
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok || vehicle.DeletedAt != nil {
		return nil, errors.NotFound("Vehicle", nil)
	}
	clone := *vehicle
	return &clone, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return errors.NotFound("Vehicle", nil)
	}
	clone := *vehicle
	r.vehicles[vehicle.ID] = &clone
	return nil
}

func (r *fakeVehicleRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return errors.NotFound("Vehicle", nil)
	}
	vehicle.Status = entity.ListingStatusInactive
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		clone := *v
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		if v.SellerID == sellerID && (status == "" || v.Status == status) {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Vehicle, int64, error) {
	return r.List(ctx, filter, "", limit, offset)
}

func (r *fakeVehicleRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return errors.NotFound("Vehicle", nil)
	}
	vehicle.Views++
	return nil
}

func (r *fakeVehicleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return errors.NotFound("Vehicle", nil)
	}
	vehicle.Status = status
	return nil
}

type fakePartRepo struct {
	mu    sync.Mutex
	parts map[string]*entity.Part
}

func newFakePartRepo(parts ...*entity.Part) *fakePartRepo {
	r := &fakePartRepo{parts: make(map[string]*entity.Part)}
	for _, p := range parts {
		r.parts[p.ID] = p
	}
	return r
}

func (r *fakePartRepo) Create(ctx context.Context, part *entity.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if part.ID == "" {
		part.ID = fmt.Sprintf("part-%d", len(r.parts)+1)
	}
	r.parts[part.ID] = part
	return nil
}

func (r *fakePartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	part, ok := r.parts[id]
	if !ok || part.DeletedAt != nil {
		return nil, errors.NotFound("Part", nil)
	}
	clone := *part
	return &clone, nil
}

func (r *fakePartRepo) Update(ctx context.Context, part *entity.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parts[part.ID]; !ok {
		return errors.NotFound("Part", nil)
	}
	clone := *part
	r.parts[part.ID] = &clone
	return nil
}

func (r *fakePartRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	part, ok := r.parts[id]
	if !ok {
		return errors.NotFound("Part", nil)
	}
	part.Status = entity.ListingStatusInactive
	return nil
}

func (r *fakePartRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Part, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Part
	for _, p := range r.parts {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakePartRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Part, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Part
	for _, p := range r.parts {
		if p.SellerID == sellerID && (status == "" || p.Status == status) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePartRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	part, ok := r.parts[id]
	if !ok {
		return errors.NotFound("Part", nil)
	}
	part.Views++
	return nil
}

func (r *fakePartRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	part, ok := r.parts[id]
	if !ok {
		return errors.NotFound("Part", nil)
	}
	part.Status = status
	return nil
}

type fakeSwapRepo struct {
	mu    sync.Mutex
	swaps map[string]*entity.Swap
}

func newFakeSwapRepo(swaps ...*entity.Swap) *fakeSwapRepo {
	r := &fakeSwapRepo{swaps: make(map[string]*entity.Swap)}
	for _, s := range swaps {
		r.swaps[s.ID] = s
	}
	return r
}

func (r *fakeSwapRepo) Create(ctx context.Context, swap *entity.Swap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if swap.ID == "" {
		swap.ID = fmt.Sprintf("swap-%d", len(r.swaps)+1)
	}
	r.swaps[swap.ID] = swap
	return nil
}

func (r *fakeSwapRepo) GetByID(ctx context.Context, id string) (*entity.Swap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	swap, ok := r.swaps[id]
	if !ok {
		return nil, errors.NotFound("Swap", nil)
	}
	clone := *swap
	return &clone, nil
}

func (r *fakeSwapRepo) Update(ctx context.Context, swap *entity.Swap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.swaps[swap.ID]; !ok {
		return errors.NotFound("Swap", nil)
	}
	clone := *swap
	r.swaps[swap.ID] = &clone
	return nil
}

func (r *fakeSwapRepo) UpdateStatus(ctx context.Context, id, expectedStatus string, apply func(*entity.Swap)) (*entity.Swap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	swap, ok := r.swaps[id]
	if !ok {
		return nil, errors.NotFound("Swap", nil)
	}
	if swap.Status != expectedStatus {
		return nil, errors.Conflict("Swap status changed, please retry", nil)
	}
	apply(swap)
	clone := *swap
	return &clone, nil
}

func (r *fakeSwapRepo) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Swap, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Swap
	for _, s := range r.swaps {
		match := (role == "receiver" && s.ReceiverID == userID) || (role != "receiver" && s.InitiatorID == userID)
		if match && (status == "" || s.Status == status) {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSwapRepo) CountActiveForItem(ctx context.Context, itemType, itemID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, s := range r.swaps {
		if s.RequestedItemType == itemType && s.RequestedItemID == itemID &&
			(s.Status == entity.SwapStatusPending || s.Status == entity.SwapStatusAccepted) {
			count++
		}
	}
	return count, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*entity.Payment
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{payments: make(map[string]*entity.Payment)}
	for _, p := range payments {
		r.payments[p.ID] = p
	}
	return r
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == "" {
		payment.ID = fmt.Sprintf("payment-%d", len(r.payments)+1)
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	clone := *payment
	return &clone, nil
}

func (r *fakePaymentRepo) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == reference {
			clone := *p
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return errors.NotFound("Payment", nil)
	}
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id, expectedStatus string, apply func(*entity.Payment)) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	if payment.Status != expectedStatus {
		return nil, errors.Conflict("Payment status changed, please retry", nil)
	}
	apply(payment)
	clone := *payment
	return &clone, nil
}

func (r *fakePaymentRepo) ListByUserID(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.UserID == userID && (status == "" || p.Status == status) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.payments {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*entity.Report
}

func newFakeReportRepo(reports ...*entity.Report) *fakeReportRepo {
	r := &fakeReportRepo{reports: make(map[string]*entity.Report)}
	for _, rep := range reports {
		r.reports[rep.ID] = rep
	}
	return r
}

func (r *fakeReportRepo) Create(ctx context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		report.ID = fmt.Sprintf("report-%d", len(r.reports)+1)
	}
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, errors.NotFound("Report", nil)
	}
	clone := *report
	return &clone, nil
}

func (r *fakeReportRepo) Update(ctx context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[report.ID]; !ok {
		return errors.NotFound("Report", nil)
	}
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *fakeReportRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Report
	for _, rep := range r.reports {
		if status, ok := filter["status"].(string); ok && rep.Status != status {
			continue
		}
		clone := *rep
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) FindOpenByReporterAndTarget(ctx context.Context, reporterID string, target entity.ReportTarget) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		open := rep.Status == entity.ReportStatusPending || rep.Status == entity.ReportStatusInvestigating
		if open && rep.ReporterID == reporterID && rep.Target == target {
			clone := *rep
			return &clone, nil
		}
	}
	return nil, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newFakeReviewRepo(reviews ...*entity.Review) *fakeReviewRepo {
	r := &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
	for _, rev := range reviews {
		r.reviews[rev.ID] = rev
	}
	return r
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		review.ID = fmt.Sprintf("review-%d", len(r.reviews)+1)
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	clone := *review
	return &clone, nil
}

func (r *fakeReviewRepo) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.SwapID == swapID && rev.ReviewerID == reviewerID {
			clone := *rev
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rev := range r.reviews {
		if rev.TargetID == targetID && rev.Status == "active" {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites []*entity.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, favorite *entity.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if favorite.ID == "" {
		favorite.ID = fmt.Sprintf("favorite-%d", len(r.favorites)+1)
	}
	r.favorites = append(r.favorites, favorite)
	return nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID, itemType, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.favorites[:0]
	for _, f := range r.favorites {
		if f.UserID == userID && f.ItemType == itemType && f.ItemID == itemID {
			continue
		}
		kept = append(kept, f)
	}
	r.favorites = kept
	return nil
}

func (r *fakeFavoriteRepo) Exists(ctx context.Context, userID, itemType, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.favorites {
		if f.UserID == userID && f.ItemType == itemType && f.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*entity.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = fmt.Sprintf("notification-%d", len(r.notifications)+1)
	}
	r.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	clone := *notification
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return errors.NotFound("Notification", nil)
	}
	notification.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) DeleteAllByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.notifications {
		if n.UserID == userID {
			delete(r.notifications, id)
		}
	}
	return nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages []*entity.Message
}

func newFakeChatRepo(chats ...*entity.Chat) *fakeChatRepo {
	r := &fakeChatRepo{chats: make(map[string]*entity.Chat)}
	for _, c := range chats {
		r.chats[c.ID] = c
	}
	return r
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		chat.ID = fmt.Sprintf("chat-%d", len(r.chats)+1)
	}
	r.chats[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	clone := *chat
	return &clone, nil
}

func (r *fakeChatRepo) FindByParticipants(ctx context.Context, userA, userB, listingType, listingID string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chat := range r.chats {
		if !hasParticipant(chat, userA) || !hasParticipant(chat, userB) {
			continue
		}
		if listingType != "" && chat.ListingType != listingType {
			continue
		}
		if listingID != "" && chat.ListingID != listingID {
			continue
		}
		clone := *chat
		return &clone, nil
	}
	return nil, nil
}

func hasParticipant(chat *entity.Chat, userID string) bool {
	for _, id := range chat.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	clone := *chat
	r.chats[chat.ID] = &clone
	return nil
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Chat
	for _, chat := range r.chats {
		if hasParticipant(chat, userID) {
			clone := *chat
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = fmt.Sprintf("message-%d", len(r.messages)+1)
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeChatRepo) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ChatID == chatID && m.SenderID != readerID {
			m.IsRead = true
		}
	}
	return nil
}

// recordingNotifier captures dispatched notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
}

type notifierCall struct {
	UserID   string
	Payload  NotificationPayload
	Channels NotificationChannels
}

func (n *recordingNotifier) Notify(ctx context.Context, userID string, payload NotificationPayload, channels NotificationChannels) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{UserID: userID, Payload: payload, Channels: channels})
}

func (n *recordingNotifier) callsFor(userID string) []notifierCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifierCall
	for _, c := range n.calls {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (n *recordingNotifier) lastTypeFor(userID string) string {
	calls := n.callsFor(userID)
	if len(calls) == 0 {
		return ""
	}
	return calls[len(calls)-1].Payload.Type
}

// fakeGateway stands in for the payment processor.
type fakeGateway struct {
	validSignature string
	verifyStatus   string
	initErr        error
	verifyCalls    int
}

func (g *fakeGateway) Initialize(ctx context.Context, req service.GatewayInitRequest) (*service.GatewayInitResponse, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}
	return &service.GatewayInitResponse{
		Reference:   req.Reference,
		CheckoutURL: "https://checkout.example.com/" + req.Reference,
		AccessCode:  "access-" + req.Reference,
	}, nil
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*service.GatewayVerifyResponse, error) {
	g.verifyCalls++
	status := g.verifyStatus
	if status == "" {
		status = "pending"
	}
	return &service.GatewayVerifyResponse{
		Reference:     reference,
		Status:        status,
		TransactionID: "txn-123",
	}, nil
}

func (g *fakeGateway) VerifyWebhookSignature(signature string, body []byte) error {
	if signature != g.validSignature {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}
