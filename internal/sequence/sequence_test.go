package sequence_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/approval-workflow/internal/sequence"
)

func TestSequence(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sequence Suite")
}

var _ = Describe("Sequence", func() {
	Describe("New", func() {
		It("should reject an empty step list", func() {
			_, err := sequence.New(nil)
			Expect(err).To(HaveOccurred())
		})

		It("should reject blank steps", func() {
			_, err := sequence.New([]string{"MANAGER", "  "})
			Expect(err).To(HaveOccurred())
		})

		It("should normalize tokens to upper case", func() {
			seq, err := sequence.New([]string{"manager", "finance"})
			Expect(err).ToNot(HaveOccurred())
			Expect(seq.StepRoleAt(0)).To(Equal(sequence.StepTokenManager))
			Expect(seq.StepRoleAt(1)).To(Equal(sequence.StepToken("FINANCE")))
		})
	})

	Describe("StepRoleAt", func() {
		It("should return the empty token out of range", func() {
			seq, err := sequence.New([]string{"MANAGER"})
			Expect(err).ToNot(HaveOccurred())
			Expect(seq.StepRoleAt(-1)).To(Equal(sequence.StepToken("")))
			Expect(seq.StepRoleAt(1)).To(Equal(sequence.StepToken("")))
		})
	})

	Describe("IsLastStep", func() {
		It("should mark only the final index as last", func() {
			seq, err := sequence.New([]string{"MANAGER", "FINANCE", "DIRECTOR"})
			Expect(err).ToNot(HaveOccurred())
			Expect(seq.IsLastStep(0)).To(BeFalse())
			Expect(seq.IsLastStep(1)).To(BeFalse())
			Expect(seq.IsLastStep(2)).To(BeTrue())
		})

		It("should treat a single-step sequence as immediately last", func() {
			seq, err := sequence.New([]string{"MANAGER"})
			Expect(err).ToNot(HaveOccurred())
			Expect(seq.IsLastStep(0)).To(BeTrue())
			Expect(seq.Len()).To(Equal(1))
		})
	})
})
