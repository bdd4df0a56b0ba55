package api

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/uvmasm/asm"
	"github.com/sarchlab/uvmasm/isa"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl   *gomock.Controller
		mockSource *MockSource
		mockSink   *MockSink
		logs       *bytes.Buffer
		driver     *Driver
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockSource = NewMockSource(mockCtrl)
		mockSink = NewMockSink(mockCtrl)
		logs = new(bytes.Buffer)

		driver = DriverBuilder{}.
			WithSource(mockSource).
			WithSink(mockSink).
			WithLogger(slog.New(slog.NewTextHandler(logs,
				&slog.HandlerOptions{Level: LevelTrace}))).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should assemble and store a program", func() {
		p := asm.Program{
			{Mnemonic: isa.Load, Operand: 0},
			{Mnemonic: isa.Write, Operand: 5},
		}
		image := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x2F, 0x00, 0x00}

		mockSource.EXPECT().Load("in.yaml").Return(p, nil)
		mockSink.EXPECT().Store("out.bin", image).Return(nil)

		result, err := driver.Run("in.yaml", "out.bin")

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Program).To(Equal(p))
		Expect(result.Image).To(Equal(image))
		Expect(logs.String()).To(ContainSubstring("program assembled"))
		Expect(logs.String()).To(ContainSubstring("binary written"))
	})

	It("should not store anything for an unknown operation", func() {
		mockSource.EXPECT().Load("in.yaml").Return(asm.Program{
			{Mnemonic: isa.Read, Operand: 1},
			{Mnemonic: "mul", Operand: 2},
		}, nil)
		mockSink.EXPECT().Store(gomock.Any(), gomock.Any()).Times(0)

		result, err := driver.Run("in.yaml", "out.bin")

		Expect(result).To(BeNil())
		Expect(err).To(MatchError(asm.ErrUnknownMnemonic))
		Expect(err.Error()).To(ContainSubstring("unknown operation: mul"))
		Expect(logs.String()).To(ContainSubstring("assembly failed"))
	})

	It("should report load errors", func() {
		loadErr := errors.New("boom")
		mockSource.EXPECT().Load("in.yaml").Return(nil, loadErr)

		_, err := driver.Run("in.yaml", "out.bin")

		Expect(err).To(MatchError(loadErr))
	})

	It("should report store errors", func() {
		storeErr := errors.New("disk full")
		mockSource.EXPECT().Load("in.yaml").
			Return(asm.Program{{Mnemonic: isa.Load, Operand: 86}}, nil)
		mockSink.EXPECT().Store("out.bin", gomock.Any()).Return(storeErr)

		_, err := driver.Run("in.yaml", "out.bin")

		Expect(err).To(MatchError(storeErr))
	})
})

var _ = Describe("Default driver", func() {
	It("should read YAML and write files", func() {
		dir, err := os.MkdirTemp("", "uvmasm")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		in := filepath.Join(dir, "prog.yaml")
		out := filepath.Join(dir, "prog.bin")

		Expect(os.WriteFile(in, []byte(
			"program:\n  - {op: read, arg: 806}\n  - {op: shift_right, arg: 655}\n"),
			0o644)).To(Succeed())

		result, err := DriverBuilder{}.
			WithLogger(slog.New(slog.NewTextHandler(GinkgoWriter, nil))).
			Build().
			Run(in, out)
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte{0x32, 0x19, 0x00, 0x7D, 0x14, 0x00}))
		Expect(result.Image).To(Equal(data))
	})
})

var _ = Describe("ParseLevel", func() {
	DescribeTable("level names",
		func(name string, expected slog.Level) {
			level, err := ParseLevel(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(level).To(Equal(expected))
		},
		Entry("trace", "trace", LevelTrace),
		Entry("debug", "debug", slog.LevelDebug),
		Entry("info", "INFO", slog.LevelInfo),
		Entry("warn", "warn", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
	)

	It("should reject unknown names", func() {
		_, err := ParseLevel("loud")
		Expect(err).To(HaveOccurred())
	})
})
