package camera_test

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shapeview/internal/camera"
)

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func randomCamera(rng *rand.Rand) *camera.Camera {
	pos := mgl32.Vec2{uniform(rng, -10, 10), uniform(rng, -10, 10)}
	return camera.New(pos, uniform(rng, 0.05, 20))
}

func randomViewport(rng *rand.Rand) camera.Rect {
	return camera.NewRect(uniform(rng, 0, 100), uniform(rng, 0, 100), uniform(rng, 50, 1000), uniform(rng, 50, 1000))
}

var _ = Describe("Camera", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	It("maps screen to world and back to the same pixel", func() {
		for i := 0; i < 500; i++ {
			cam, vp := randomCamera(rng), randomViewport(rng)
			p := vp.Min.Add(mgl32.Vec2{rng.Float32() * vp.Size.X(), rng.Float32() * vp.Size.Y()})

			back := cam.WorldToScreen(cam.ScreenToWorld(p, vp), vp)

			Expect(back.X()).To(BeNumerically("~", p.X(), 0.05))
			Expect(back.Y()).To(BeNumerically("~", p.Y(), 0.05))
		}
	})

	It("undoes a pan with the opposite pan", func() {
		for i := 0; i < 500; i++ {
			cam, vp := randomCamera(rng), randomViewport(rng)
			start := cam.Position
			d := mgl32.Vec2{uniform(rng, -500, 500), uniform(rng, -500, 500)}

			Expect(cam.Pan(d, vp.Size)).To(BeTrue())
			Expect(cam.Pan(d.Mul(-1), vp.Size)).To(BeTrue())

			Expect(cam.Position.X()).To(BeNumerically("~", start.X(), 1e-3))
			Expect(cam.Position.Y()).To(BeNumerically("~", start.Y(), 1e-3))
		}
	})

	It("keeps the world point under the pointer while dragging", func() {
		for i := 0; i < 200; i++ {
			cam, vp := randomCamera(rng), randomViewport(rng)
			from := vp.Center()
			d := mgl32.Vec2{uniform(rng, -40, 40), uniform(rng, -40, 40)}
			grabbed := cam.ScreenToWorld(from, vp)

			cam.Pan(d, vp.Size)

			now := cam.ScreenToWorld(from.Add(d), vp)
			Expect(now.X()).To(BeNumerically("~", grabbed.X(), 1e-3))
			Expect(now.Y()).To(BeNumerically("~", grabbed.Y(), 1e-3))
		}
	})

	It("restores zoom after scrolling up and down the same amount", func() {
		cam := camera.New(mgl32.Vec2{}, 1)
		steps := rng.Intn(50) + 1
		for i := 0; i < steps; i++ {
			cam.Scroll(1)
		}
		for i := 0; i < steps; i++ {
			cam.Scroll(-1)
		}
		Expect(cam.Zoom).To(BeNumerically("~", 1, 1e-4))
	})

	It("never leaves the zoom limits", func() {
		cam := camera.New(mgl32.Vec2{}, 1)
		lo, hi := cam.ZoomLimits()
		for i := 0; i < 2000; i++ {
			if rng.Intn(2) == 0 {
				cam.ZoomBy(rng.Intn(400))
			} else {
				cam.ZoomBy(-rng.Intn(400))
			}
			Expect(cam.Zoom).To(And(BeNumerically(">=", lo), BeNumerically("<=", hi)))
		}
	})

	DescribeTable("ignores degenerate viewports",
		func(w, h float32) {
			cam := camera.New(mgl32.Vec2{1, 2}, 1)
			Expect(cam.Pan(mgl32.Vec2{10, 10}, mgl32.Vec2{w, h})).To(BeFalse())
			Expect(cam.Position).To(Equal(mgl32.Vec2{1, 2}))
		},
		Entry("zero width", float32(0), float32(100)),
		Entry("zero height", float32(100), float32(0)),
		Entry("negative", float32(-1), float32(100)),
	)
})
