// pose_feeder 模拟手部检测端
//
// 连接游戏的关键点 WebSocket，推送两只手腕沿 8 字形轨迹移动的关键点，
// 用于在没有摄像头的环境下调试手部切水果。
//
// 用法：
//
//	go run ./cmd/pose_feeder -url ws://127.0.0.1:8765/pose -fps 30 -drop 0.1 -preview
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/decker502/ninjafruit/pkg/pose"
)

var (
	// 命令行参数
	url      = flag.String("url", "", "游戏关键点服务地址（默认由 NINJAFRUIT_POSE_ADDR 推导）")
	fps      = flag.Int("fps", 30, "每秒发送的关键点帧数")
	period   = flag.Float64("period", 3, "8 字形轨迹一圈的时间（秒）")
	drop     = flag.Float64("drop", 0, "每只手每帧丢失坐标的概率 0.0 ~ 1.0")
	preview  = flag.Bool("preview", false, "同时发送合成的摄像头预览帧（每秒一帧）")
	duration = flag.Duration("duration", 0, "运行时长，0 表示直到 Ctrl+C")
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[PoseFeeder] Warning: failed to load .env: %v", err)
	}
	flag.Parse()

	if *fps <= 0 || *period <= 0 || *drop < 0 || *drop > 1 {
		log.Fatalf("invalid flags: fps=%d period=%v drop=%v", *fps, *period, *drop)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	err := run(ctx, resolveURL(*url))
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Fatalf("[PoseFeeder] %v", err)
	}
}

// resolveURL 命令行 > 环境变量 > 默认地址
func resolveURL(flagURL string) string {
	if flagURL != "" {
		return flagURL
	}
	addr := os.Getenv("NINJAFRUIT_POSE_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8765"
	}
	return fmt.Sprintf("ws://%s/pose", addr)
}

func run(ctx context.Context, target string) error {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	client, err := pose.Dial(dialCtx, target, "pose_feeder-"+uuid.NewString()[:8])
	cancel()
	if err != nil {
		return err
	}
	defer client.Close()
	log.Printf("[PoseFeeder] Connected to %s (session %s, %dx%d)", target, client.Session, client.Width, client.Height)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	w, h := float64(client.Width), float64(client.Height)

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	start := time.Now()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			log.Printf("[PoseFeeder] Sent %d frames", frames)
			return ctx.Err()
		case now := <-ticker.C:
			phase := now.Sub(start).Seconds() / *period
			left, right := figureEight(phase, w, h)
			if rng.Float64() < *drop {
				left = pose.Keypoint{}
			}
			if rng.Float64() < *drop {
				right = pose.Keypoint{}
			}
			if err := client.SendHands(left, right); err != nil {
				return err
			}
			frames++

			if *preview && frames%*fps == 0 {
				frame, err := previewFrame(phase)
				if err != nil {
					return err
				}
				if err := client.SendPreview(frame); err != nil {
					return err
				}
			}
		}
	}
}

// figureEight 返回 phase 圈时两只手腕的位置
// 左手在屏幕左半边、右手在右半边画 8 字，右手相位错开半圈
func figureEight(phase, width, height float64) (left, right pose.Keypoint) {
	point := func(cx, p float64) pose.Keypoint {
		a := 2 * math.Pi * p
		return pose.At(cx+width*0.18*math.Sin(a), height*0.5+height*0.3*math.Sin(2*a))
	}
	return point(width*0.3, phase), point(width*0.7, phase+0.5)
}

// previewFrame 合成一帧 JPEG 预览（颜色随相位变化）
func previewFrame(phase float64) ([]byte, error) {
	const w, h = 320, 180
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	shift := uint8(int(phase*255) % 256)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x*255/w) + shift, G: uint8(y * 255 / h), B: 0x60, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
