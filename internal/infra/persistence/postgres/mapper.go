package postgres

import (
	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"github.com/paulmach/orb"
)

func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:       productM.ID,
		Name:     productM.Name,
		Price:    productM.Price,
		ImageRef: productM.ImageRef,
		Stock:    productM.Stock,
		Dimensions: entity.Dimensions{
			LengthCm: productM.LengthCm,
			WidthCm:  productM.WidthCm,
			HeightCm: productM.HeightCm,
			WeightKg: productM.WeightKg,
		},
		CreatedAt: productM.CreatedAt,
		UpdatedAt: productM.UpdatedAt,
	}
}

func toLineItemDomain(row *model.CartLineRow) entity.LineItem {
	return entity.LineItem{
		ProductID:      row.ProductID,
		Name:           row.Name,
		UnitPrice:      row.UnitPrice,
		Quantity:       row.Quantity,
		ImageRef:       row.ImageRef,
		AvailableStock: row.Stock,
		Dimensions: entity.Dimensions{
			LengthCm: row.LengthCm,
			WidthCm:  row.WidthCm,
			HeightCm: row.HeightCm,
			WeightKg: row.WeightKg,
		},
	}
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	orderM := &model.OrderModel{
		ID:                    order.ID,
		UserID:                order.UserID,
		Status:                string(order.Status),
		TotalAmount:           order.TotalAmount,
		ShippingCost:          order.ShippingCost,
		Currency:              order.Currency,
		ShipStreet:            order.ShippingAddress.Street,
		ShipLocality:          order.ShippingAddress.Locality,
		ShipRegion:            order.ShippingAddress.Region,
		ShipPostalCode:        order.ShippingAddress.PostalCode,
		ShipCountry:           order.ShippingAddress.Country,
		ContactName:           order.Contact.Name,
		ContactCompany:        order.Contact.Company,
		ContactEmail:          order.Contact.Email,
		ContactPhone:          order.Contact.Phone,
		CarrierID:             order.CarrierID,
		ServiceLevelID:        order.ServiceLevelID,
		PaymentMethod:         order.PaymentMethod,
		IdempotencyKey:        order.IdempotencyKey,
		TrackingNumber:        order.TrackingNumber,
		LabelURL:              order.LabelURL,
		EstimatedDeliveryDate: order.EstimatedDeliveryDate,
		ShipmentStatus:        string(order.ShipmentStatus),
		ShipmentError:         order.ShipmentError,
		ShipmentAttemptedAt:   order.ShipmentAttemptedAt,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
	if loc := order.ShippingAddress.Location; loc != nil {
		lat, lng := loc.Lat(), loc.Lon()
		orderM.ShipLat = &lat
		orderM.ShipLng = &lng
	}

	orderM.Items = make([]model.OrderItemModel, 0, len(order.Lines))
	for _, line := range order.Lines {
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.UnitPriceAtPurchase,
		})
	}

	return orderM
}

func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:           orderM.ID,
		UserID:       orderM.UserID,
		Status:       entity.OrderStatus(orderM.Status),
		TotalAmount:  orderM.TotalAmount,
		ShippingCost: orderM.ShippingCost,
		Currency:     orderM.Currency,
		ShippingAddress: entity.Address{
			Street:     orderM.ShipStreet,
			Locality:   orderM.ShipLocality,
			Region:     orderM.ShipRegion,
			PostalCode: orderM.ShipPostalCode,
			Country:    orderM.ShipCountry,
		},
		Contact: entity.Contact{
			Name:    orderM.ContactName,
			Company: orderM.ContactCompany,
			Email:   orderM.ContactEmail,
			Phone:   orderM.ContactPhone,
		},
		CarrierID:             orderM.CarrierID,
		ServiceLevelID:        orderM.ServiceLevelID,
		PaymentMethod:         orderM.PaymentMethod,
		IdempotencyKey:        orderM.IdempotencyKey,
		TrackingNumber:        orderM.TrackingNumber,
		LabelURL:              orderM.LabelURL,
		EstimatedDeliveryDate: orderM.EstimatedDeliveryDate,
		ShipmentStatus:        entity.ShipmentStatus(orderM.ShipmentStatus),
		ShipmentError:         orderM.ShipmentError,
		ShipmentAttemptedAt:   orderM.ShipmentAttemptedAt,
		CreatedAt:             orderM.CreatedAt,
		UpdatedAt:             orderM.UpdatedAt,
	}
	if orderM.ShipLat != nil && orderM.ShipLng != nil {
		point := orb.Point{*orderM.ShipLng, *orderM.ShipLat}
		order.ShippingAddress.Location = &point
	}

	order.Lines = make([]entity.OrderLine, 0, len(orderM.Items))
	for _, item := range orderM.Items {
		order.Lines = append(order.Lines, entity.OrderLine{
			ProductID:           item.ProductID,
			Name:                item.Name,
			Quantity:            item.Quantity,
			UnitPriceAtPurchase: item.Price,
		})
	}

	return order
}
