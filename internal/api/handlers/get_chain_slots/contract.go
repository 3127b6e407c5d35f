package get_chain_slots

import (
	"context"

	getChainSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_chain_slots"
)

type GetChainSlotsUseCase interface {
	Execute(ctx context.Context, req *getChainSlots.Request) (*getChainSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
