package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/season --output domain/season --outpkg seasonmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Publisher --dir ../domain/refresh --output domain/refresh --outpkg refreshmock --filename publisher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Generator --dir ../domain/suggestion --output domain/suggestion --outpkg suggestionmock --filename generator_mock.go
