package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handmade-hub/handmade-hub-backend-go/authz"
	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

// TrackingUpdate is the body of a tracking update. Nil fields are absent; an empty
// Status or Location counts as absent too.
type TrackingUpdate struct {
	TrackingNumber *string `json:"trackingNumber"`
	Carrier        *string `json:"carrier"`
	TrackingStatus *string `json:"trackingStatus"`
	TrackingURL    *string `json:"trackingUrl"`
	Status         *string `json:"status"`
	Location       *string `json:"location"`
}

// OrderService runs the order lifecycle: creation, status and tracking changes, and the
// per-role visibility rules for reads.
type OrderService struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrderService(orders OrderStore, products ProductStore, users UserStore, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		logger:   logger.Named("orders"),
		now:      time.Now,
	}
}

// Create places an order for the actor. The fulfilling artisan is the owner of the
// first item's product, even when later items belong to other artisans.
func (s *OrderService) Create(ctx context.Context, actor models.Actor, items []models.OrderItem, totalPrice float64) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errs.Validation("order must contain at least one item")
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, errs.Validation(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
	}
	if totalPrice < 0 {
		return nil, errs.Validation("total price must not be negative")
	}

	first, err := s.products.FindByID(ctx, items[0].Product)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validation("product not found")
		}
		return nil, errs.Internal("order creation failed", err)
	}
	if err := s.checkProductsExist(ctx, items[1:]); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              primitive.NewObjectID(),
		Customer:        actor.ID,
		Artisan:         first.Artisan,
		Items:           append([]models.OrderItem(nil), items...),
		TotalPrice:      totalPrice,
		Status:          models.OrderStatusPending,
		TrackingStatus:  models.DefaultTrackingStatus,
		TrackingHistory: []models.TrackingEntry{},
		CreatedAt:       s.now(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, errs.Internal("order creation failed", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("customer_id", order.Customer.Hex()),
		zap.String("artisan_id", order.Artisan.Hex()))
	return order, nil
}

func (s *OrderService) checkProductsExist(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return errs.Internal("order creation failed", err)
	}
	known := make(map[primitive.ObjectID]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return errs.Validation(fmt.Sprintf("product %s not found", id.Hex()))
		}
	}
	return nil
}

func (s *OrderService) ListMine(ctx context.Context, actor models.Actor) ([]models.OrderView, error) {
	return s.list(ctx, models.OrderFilter{Customer: &actor.ID})
}

func (s *OrderService) ListForArtisan(ctx context.Context, actor models.Actor) ([]models.OrderView, error) {
	if !actor.Is(models.RoleArtisan) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	return s.list(ctx, models.OrderFilter{Artisan: &actor.ID, NewestFirst: true})
}

func (s *OrderService) ListAll(ctx context.Context, actor models.Actor) ([]models.OrderView, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	return s.list(ctx, models.OrderFilter{})
}

func (s *OrderService) ListByCustomer(ctx context.Context, actor models.Actor, customerID primitive.ObjectID) ([]models.OrderView, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	return s.list(ctx, models.OrderFilter{Customer: &customerID})
}

func (s *OrderService) list(ctx context.Context, filter models.OrderFilter) ([]models.OrderView, error) {
	orders, err := s.orders.Find(ctx, filter)
	if err != nil {
		return nil, errs.Internal("failed to fetch orders", err)
	}
	return s.view(ctx, orders...)
}

// Get returns an order the actor may see. A located order the actor does not own is
// Forbidden, not NotFound.
func (s *OrderService) Get(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.OrderView, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, order) {
		return nil, errs.Forbidden("unauthorized access to order")
	}
	return s.viewOne(ctx, order)
}

// GetForArtisan is the artisan dashboard read; only the fulfilling artisan passes.
func (s *OrderService) GetForArtisan(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.OrderView, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(models.RoleArtisan) || order.Artisan != actor.ID {
		return nil, errs.Forbidden("unauthorized access to order")
	}
	return s.viewOne(ctx, order)
}

func canView(actor models.Actor, order *models.Order) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return order.Customer == actor.ID
	case models.RoleArtisan:
		return order.Artisan == actor.ID
	}
	return false
}

// UpdateStatus is the admin-only status route. It never touches tracking history.
func (s *OrderService) UpdateStatus(ctx context.Context, actor models.Actor, id primitive.ObjectID, status models.OrderStatus) (*models.OrderView, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	if !status.IsValid() {
		return nil, errs.Validation("invalid status value")
	}
	order, err := s.orders.SetStatus(ctx, id, status)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Internal("failed to update order status", err)
	}

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID.Hex()),
		zap.String("status", string(order.Status)),
		zap.String("actor_id", actor.ID.Hex()))
	return s.viewOne(ctx, order)
}

// UpdateTracking applies a partial tracking update for an admin or the fulfilling artisan.
// A provided status or location appends one history entry; its status falls back to the
// shipment trackingStatus, not the order status.
func (s *OrderService) UpdateTracking(ctx context.Context, actor models.Actor, id primitive.ObjectID, upd TrackingUpdate) (*models.OrderView, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin, models.RoleArtisan) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Is(models.RoleArtisan) && order.Artisan != actor.ID {
		return nil, errs.Forbidden("unauthorized")
	}

	patch := models.TrackingPatch{
		TrackingNumber: upd.TrackingNumber,
		Carrier:        upd.Carrier,
		TrackingStatus: upd.TrackingStatus,
		TrackingURL:    upd.TrackingURL,
	}
	status := valueOf(upd.Status)
	if status != "" {
		st := models.OrderStatus(status)
		if !st.IsValid() {
			return nil, errs.Validation("invalid status value")
		}
		patch.Status = &st
	}

	var entry *models.TrackingEntry
	location := valueOf(upd.Location)
	if status != "" || location != "" {
		trackingStatus := order.TrackingStatus
		if upd.TrackingStatus != nil {
			trackingStatus = *upd.TrackingStatus
		}
		entry = &models.TrackingEntry{
			Date:     s.now(),
			Location: location,
			Status:   status,
		}
		if entry.Status == "" {
			entry.Status = trackingStatus
		}
	}

	updated, err := s.orders.ApplyTracking(ctx, id, patch, entry)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Internal("failed to update tracking info", err)
	}

	s.logger.Info("order tracking updated",
		zap.String("order_id", updated.ID.Hex()),
		zap.String("actor_id", actor.ID.Hex()),
		zap.Bool("history_appended", entry != nil))
	return s.viewOne(ctx, updated)
}

func (s *OrderService) Delete(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return errs.Forbidden("unauthorized role access")
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("order not found")
		}
		return errs.Internal("failed to delete order", err)
	}
	s.logger.Info("order deleted", zap.String("order_id", id.Hex()), zap.String("actor_id", actor.ID.Hex()))
	return nil
}

// Analytics returns the order count and revenue sum for the admin dashboard.
func (s *OrderService) Analytics(ctx context.Context, actor models.Actor) (*models.OrderAnalytics, error) {
	if !authz.Allow(actor.Role, models.RoleAdmin) {
		return nil, errs.Forbidden("unauthorized role access")
	}
	var res models.OrderAnalytics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.orders.Count(gctx)
		res.TotalOrders = n
		return err
	})
	g.Go(func() error {
		sum, err := s.orders.SumRevenue(gctx)
		res.TotalRevenue = sum
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Internal("failed to fetch order analytics", err)
	}
	return &res, nil
}

func (s *OrderService) load(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Internal("failed to fetch order", err)
	}
	return order, nil
}

func (s *OrderService) viewOne(ctx context.Context, order *models.Order) (*models.OrderView, error) {
	views, err := s.view(ctx, *order)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// view resolves customers and products for display. References that no longer resolve
// are left as bare ids.
func (s *OrderService) view(ctx context.Context, orders ...models.Order) ([]models.OrderView, error) {
	if len(orders) == 0 {
		return []models.OrderView{}, nil
	}
	userIDs := make([]primitive.ObjectID, 0, len(orders))
	var productIDs []primitive.ObjectID
	for _, o := range orders {
		userIDs = append(userIDs, o.Customer)
		for _, item := range o.Items {
			productIDs = append(productIDs, item.Product)
		}
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, errs.Internal("failed to fetch orders", err)
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, errs.Internal("failed to fetch orders", err)
	}
	userByID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}
	productByID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		customer := models.UserSummary{ID: o.Customer}
		if u, ok := userByID[o.Customer]; ok {
			customer = u.Summary()
		}
		items := make([]models.OrderItemView, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, models.OrderItemView{
				ProductID: item.Product,
				Product:   productByID[item.Product],
				Quantity:  item.Quantity,
			})
		}
		history := o.TrackingHistory
		if history == nil {
			history = []models.TrackingEntry{}
		}
		views = append(views, models.OrderView{
			ID:              o.ID,
			Customer:        customer,
			Artisan:         o.Artisan,
			Items:           items,
			TotalPrice:      o.TotalPrice,
			Status:          o.Status,
			TrackingNumber:  o.TrackingNumber,
			Carrier:         o.Carrier,
			TrackingStatus:  o.TrackingStatus,
			TrackingURL:     o.TrackingURL,
			TrackingHistory: history,
			CreatedAt:       o.CreatedAt,
		})
	}
	return views, nil
}

func valueOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
