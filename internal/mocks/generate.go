package mocks

//go:generate mockery --name EventStore --srcpkg github.com/storefront-lab/pulse/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Oracle --srcpkg github.com/storefront-lab/pulse/internal/session --output ./session --outpkg sessionmocks --with-expecter
