package service

import (
	"context"
	"encoding/json"

	"Orbit_Community/internal/pkg"
)

// MediaService 对象存储协作方的薄封装：签上传 URL、把帖子的 ref 解析成可访问 URL
type MediaService struct {
	store pkg.BlobStore
}

func NewMediaService(store pkg.BlobStore) *MediaService {
	return &MediaService{store: store}
}

type UploadTicket struct {
	UploadURL string `json:"upload_url"`
	Ref       string `json:"ref"`
}

func (s *MediaService) RequestUpload(ctx context.Context) (*UploadTicket, error) {
	uploadURL, ref, err := s.store.GenerateUploadURL(ctx)
	if err != nil {
		return nil, err
	}
	return &UploadTicket{UploadURL: uploadURL, Ref: ref}, nil
}

// ResolveRefs 帖子 media_refs JSON → URL 列表；单个解析失败跳过不拦整帖
func (s *MediaService) ResolveRefs(ctx context.Context, refsJSON string) []string {
	if refsJSON == "" {
		return nil
	}
	var refs []string
	if err := json.Unmarshal([]byte(refsJSON), &refs); err != nil {
		return nil
	}
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		u, err := s.store.GetURL(ctx, ref)
		if err != nil {
			continue
		}
		urls = append(urls, u)
	}
	return urls
}
