package promote_waitlist

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request пул, в котором освободилось место или выросла ёмкость
type Request struct {
	Key domain.PoolKey
}

// Response заявки, получившие место, в порядке очереди
type Response struct {
	Promoted []domain.ParkingRequest
}
