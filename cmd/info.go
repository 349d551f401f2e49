/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/ctsmon"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display port details and direct GPIO capability",
	Long: `Display detailed information about a serial port including USB metadata
and whether its control lines can be read directly over USB.

Examples:
  ctsmon info /dev/ttyUSB0
  ctsmon info /dev/serial/by-id/usb-FTDI_FT232R_USB_UART_A50285BI-if00-port0

For USB devices, this displays vendor/product IDs, serial numbers, interface
numbers, and bus location extracted from sysfs.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		info, err := ctsmon.GetPortInfo(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting port info: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Port Information: %s\n\n", info.Path)
		fmt.Printf("  Name:        %s\n", info.Name)
		fmt.Printf("  Description: %s\n", info.Description)

		if info.IsUSB() {
			fmt.Println("\nUSB Device Information:")
			printField("Vendor ID", info.VendorID)
			printField("Product ID", info.ProductID)
			printField("Serial", info.SerialNumber)
			printField("Interface", info.InterfaceNumber)
			printField("Bus", info.BusNumber)
			printField("Device", info.DeviceNumber)
			printField("Manufacturer", info.Manufacturer)
			printField("Product", info.Product)
		}

		cls := ctsmon.NewClassifier().Classify(portPath)
		fmt.Println("\nSignal Source:")
		if cls.Capable {
			fmt.Printf("  Backend:      %s\n", ctsmon.SourceDirectGPIO)
			fmt.Printf("  Chip:         %s\n", cls.Chip)
			fmt.Printf("  Location:     bus %03d device %03d, channel %c\n", cls.Bus, cls.Address, 'A'+cls.Interface)
		} else {
			fmt.Printf("  Backend:      %s\n", ctsmon.SourceLineStatus)
			fmt.Printf("  Reason:       %s\n", cls.Reason)
		}
	},
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-13s %s\n", label+":", value)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
