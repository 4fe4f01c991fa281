package main

import (
	"context"
	"os"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"
	"Orbit_Community/internal/repository/redis"
	"Orbit_Community/internal/router"
	"Orbit_Community/internal/service"
)

func main() {
	dsn := "user:password@tcp(127.0.0.1:3306)/orbit?charset=utf8mb4&parseTime=True"
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init("127.0.0.1:6379", "203423", 0); err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.Account{},
		&model.Profile{},
		&model.Membership{},
		&model.Space{},
		&model.SpaceVisit{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.PointsLedgerEntry{},
		&model.Notification{},
		&model.NotificationOutbox{},
		&model.Follow{},
	)

	// 对象存储，未配置时上传接口返回 503
	var store pkg.BlobStore
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		s, err := pkg.NewMinioStore(pkg.MinioConfig{
			Endpoint:  endpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    "orbit-media",
		})
		if err != nil {
			panic(err)
		}
		store = s
	}

	// 通知投递：有 kafka 走 kafka，没有就打日志
	var sender service.Sender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: []string{brokers},
			Topic:   "orbit.notifications",
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	} else {
		sender = service.LogSender
	}
	relayer := service.NewOutboxRelayer(mysql.DB, sender)
	go relayer.Run(context.Background())

	// Gin
	r := router.InitRouter(store)
	err := r.Run(":8080")
	if err != nil {
		return
	}
}
