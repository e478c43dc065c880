package main

import (
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/pavanmanishd/regionarena"
	"github.com/pavanmanishd/regionarena/internal/config"
	"github.com/pavanmanishd/regionarena/metrics"
)

// demo carries what every walkthrough needs once flags are parsed.
type demo struct {
	cfg *config.Config
	out io.Writer
	log *slog.Logger
}

type step struct {
	name  string
	short string
	run   func() error
}

func (d *demo) steps() []step {
	return []step{
		{"basic", "Typed allocations from a single chunk", d.basic},
		{"aligned", "Aligned allocations", d.aligned},
		{"growth", "Automatic growth into a second chunk", d.growth},
		{"checkpoint", "Mark and roll back temporary data", d.checkpoint},
		{"reset", "Reset the whole arena", d.reset},
		{"realloc", "Grow the latest allocation in place", d.realloc},
		{"stats", "Print usage statistics", d.stats},
		{"frames", "Per-frame scratch memory", d.frames},
		{"strings", "Build paths inside the arena", d.strings},
		{"resize", "Resize the head chunk", d.resize},
	}
}

func (d *demo) all() error {
	d.printf("\n||   Arena Allocator - Full Examples     ||\n\n")
	for _, s := range d.steps() {
		if err := s.run(); err != nil {
			return errors.WithMessage(err, s.name)
		}
	}
	d.printf("||          All Examples Complete         ||\n\n")
	return nil
}

func (d *demo) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

func (d *demo) source() regionarena.Source {
	var src regionarena.Source = regionarena.HeapSource{}
	if d.cfg.Source == config.SourceMmap {
		src = regionarena.MmapSource{}
	}
	if d.cfg.Budget > 0 {
		src = regionarena.NewLimitSource(src, d.cfg.Budget)
	}
	return src
}

// withArena creates an arena of the given capacity, runs fn against it and
// releases it, reporting metrics first when enabled.
func (d *demo) withArena(name string, capacity int, fn func(a *regionarena.Arena) error) error {
	a, err := regionarena.New(capacity,
		regionarena.WithSource(d.source()),
		regionarena.WithLogger(d.log.With("arena", name)))
	if err != nil {
		return err
	}
	defer a.Release()

	if err := fn(a); err != nil {
		return err
	}
	if d.cfg.Metrics {
		return d.writeMetrics(name, a)
	}
	return nil
}

func (d *demo) writeMetrics(name string, a *regionarena.Arena) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector(name, a)); err != nil {
		return errors.Wrap(err, "register collector")
	}
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(d.out, mf); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	d.printf("\n")
	return nil
}

func (d *demo) basic() error {
	d.printf("=== Basic Usage ===\n")
	return d.withArena("basic", d.cfg.Capacity, func(a *regionarena.Arena) error {
		numbers, err := regionarena.AllocSlice[int32](a, 10)
		if err != nil {
			return err
		}
		for i := range numbers {
			numbers[i] = int32(i * i)
		}

		msg, err := a.AllocBytes(256)
		if err != nil {
			return err
		}
		msg = fmt.Appendf(msg[:0], "Allocated %d integers", len(numbers))

		d.printf("%s: ", msg)
		for _, n := range numbers[:5] {
			d.printf("%d ", n)
		}
		d.printf("...\n\n")
		return nil
	})
}

func (d *demo) aligned() error {
	d.printf("=== Aligned Allocations ===\n")
	return d.withArena("aligned", 8192, func(a *regionarena.Arena) error {
		for _, req := range []struct{ size, align int }{
			{4 * 16, 16}, // 16 float32 lanes
			{8 * 8, 64},  // one cache line of float64
		} {
			b, err := a.AllocAligned(req.size, req.align)
			if err != nil {
				return err
			}
			p := unsafe.SliceData(b)
			ok := "No"
			if uintptr(unsafe.Pointer(p))%uintptr(req.align) == 0 {
				ok = "Yes"
			}
			d.printf("%d-byte aligned address: %p\n", req.align, p)
			d.printf("Is %d-byte aligned: %s\n", req.align, ok)
		}
		d.printf("\n")
		return nil
	})
}

func (d *demo) growth() error {
	d.printf("=== Automatic Growth ===\n")
	return d.withArena("growth", 1024, func(a *regionarena.Arena) error {
		d.printf("Initial arena size: %d bytes\n", a.Capacity())
		if _, err := a.AllocBytes(500); err != nil {
			return err
		}
		d.printf("Allocated 500 bytes\n")
		if _, err := a.AllocBytes(2048); err != nil {
			return err
		}
		d.printf("Allocated 2048 bytes (triggers growth)\n")
		return a.WriteStats(d.out)
	})
}

func (d *demo) checkpoint() error {
	d.printf("=== Checkpoint and Restore ===\n")
	return d.withArena("checkpoint", d.cfg.Capacity, func(a *regionarena.Arena) error {
		data, err := regionarena.AllocSlice[int32](a, 10)
		if err != nil {
			return err
		}
		for i := range data {
			data[i] = int32(i)
		}
		d.printf("Allocated permanent data\n")

		m := a.Mark()
		d.printf("Saved checkpoint at offset: %d\n", m)

		temp, err := a.AllocBytes(1000)
		if err != nil {
			return err
		}
		temp = fmt.Appendf(temp[:0], "Temporary allocation")
		d.printf("Allocated temporary data: %s\n", temp)
		d.printf("Current offset: %d\n", a.Mark())

		if err := a.ResetToMark(m); err != nil {
			return err
		}
		d.printf("Restored to checkpoint\n")
		d.printf("Offset after restore: %d\n", a.Mark())
		d.printf("Permanent data still valid: %d %d %d...\n\n", data[0], data[1], data[2])
		return nil
	})
}

func (d *demo) reset() error {
	d.printf("=== Full Reset ===\n")
	return d.withArena("reset", d.cfg.Capacity, func(a *regionarena.Arena) error {
		for i := 0; i < 5; i++ {
			if _, err := a.AllocBytes(100); err != nil {
				return err
			}
		}
		d.printf("Made 5 allocations\n")
		d.printf("Offset before reset: %d\n", a.Mark())

		a.Reset()
		d.printf("Arena reset\n")
		d.printf("Offset after reset: %d\n", a.Mark())

		fresh, err := a.AllocBytes(50)
		if err != nil {
			return err
		}
		fresh = fmt.Appendf(fresh[:0], "Fresh start")
		d.printf("New allocation after reset: %s\n\n", fresh)
		return nil
	})
}

func (d *demo) realloc() error {
	d.printf("=== Reallocation ===\n")
	return d.withArena("realloc", d.cfg.Capacity, func(a *regionarena.Arena) error {
		str, err := a.AllocBytes(10)
		if err != nil {
			return err
		}
		n := copy(str, "Hello")
		d.printf("Original: %s (size: %d)\n", str[:n], len(str))

		str, err = a.Realloc(str, 50)
		if err != nil {
			return err
		}
		n += copy(str[n:], ", World! This is longer.")
		d.printf("After realloc: %s (size: %d)\n\n", str[:n], len(str))
		return nil
	})
}

func (d *demo) stats() error {
	d.printf("=== Statistics ===\n")
	return d.withArena("stats", 2048, func(a *regionarena.Arena) error {
		for _, n := range []int{100, 200, 300} {
			if _, err := a.AllocBytes(n); err != nil {
				return err
			}
		}
		if _, err := a.AllocAligned(500, 16); err != nil {
			return err
		}
		return a.WriteStats(d.out)
	})
}

func (d *demo) frames() error {
	d.printf("=== Game Frame Pattern ===\n")
	return d.withArena("frames", d.cfg.Capacity, func(a *regionarena.Arena) error {
		for frame := 0; frame < d.cfg.Frames; frame++ {
			d.printf("Frame %d:\n", frame)

			entityCount := 100 + frame*50
			if _, err := regionarena.AllocSlice[int32](a, entityCount); err != nil {
				return err
			}
			if _, err := regionarena.AllocSlice[float32](a, 500); err != nil {
				return err
			}
			line, err := a.AllocBytes(128)
			if err != nil {
				return err
			}
			line = fmt.Appendf(line[:0], "Frame %d rendered with %d entities", frame, entityCount)

			d.printf("  %s\n", line)
			d.printf("  Arena usage: %d bytes\n", a.Mark())
			a.Reset()
		}
		d.printf("  Chunks after %d frames: %d\n\n", d.cfg.Frames, a.NumChunks())
		return nil
	})
}

func (d *demo) strings() error {
	d.printf("=== String Builder Pattern ===\n")
	return d.withArena("strings", d.cfg.Capacity, func(a *regionarena.Arena) error {
		var paths []string
		for _, p := range [][2]string{
			{"/usr/local", "bin"},
			{"/home/user", "documents"},
			{"/var/log", "system.log"},
		} {
			path, err := regionarena.Join(a, "/", p[0], p[1])
			if err != nil {
				return err
			}
			paths = append(paths, path)
		}

		d.printf("Built paths:\n")
		for _, p := range paths {
			d.printf("  %s\n", p)
		}
		d.printf("\n")
		return nil
	})
}

func (d *demo) resize() error {
	d.printf("=== Manual Resize ===\n")
	return d.withArena("resize", 1024, func(a *regionarena.Arena) error {
		d.printf("Initial size: %d bytes\n", a.Capacity())
		if _, err := a.AllocBytes(500); err != nil {
			return err
		}
		d.printf("Allocated 500 bytes\n")

		if err := a.Resize(4096); err != nil {
			return err
		}
		d.printf("Resized to 4096 bytes\n")
		d.printf("New size: %d bytes\n\n", a.Capacity())
		return nil
	})
}
