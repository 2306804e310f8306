package domain

import "errors"

var (
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessAddCart          = "recipe added to shopping cart"
	MessageSuccessRemoveCart       = "recipe removed from shopping cart"
	MessageSuccessSubscribe        = "subscribed to author"
	MessageSuccessUnsubscribe      = "unsubscribed from author"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedAddFavorite      = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite   = "failed to remove recipe from favorites"
	MessageFailedAddCart          = "failed to add recipe to shopping cart"
	MessageFailedRemoveCart       = "failed to remove recipe from shopping cart"
	MessageFailedSubscribe        = "failed to subscribe to author"
	MessageFailedUnsubscribe      = "failed to unsubscribe from author"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	// ErrRelationExists is returned when the (user, target) row is already present.
	ErrRelationExists   = errors.New("relation already exists")
	ErrRelationNotFound = errors.New("relation not found")
	ErrSelfFollow       = errors.New("cannot subscribe to yourself")
)
