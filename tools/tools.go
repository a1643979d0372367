//go:build tools

// Пакет tools фиксирует версии генераторов кода.
// Генераторы protoc ставятся вручную, версии совпадают с заголовками proto/rms/v1/*.pb.go:
//
//	go install google.golang.org/protobuf/cmd/protoc-gen-go@v1.36.11
//	go install google.golang.org/grpc/cmd/protoc-gen-go-grpc@v1.6.0
//
// Перегенерация из корня репозитория:
//
//	protoc --go_out=. --go_opt=paths=source_relative \
//	  --go-grpc_out=. --go-grpc_opt=paths=source_relative \
//	  proto/rms/v1/return_service.proto
package tools
