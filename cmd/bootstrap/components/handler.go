package components

import (
	"innkeeper/internal/handler"
	"innkeeper/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewFolioHandler,
		api.NewRoomHandler,
		func(r *api.ReservationHandler, f *api.FolioHandler, rm *api.RoomHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Folio: f, Room: rm}
		},
	),
	fx.Invoke(handler.NewRouter),
)
